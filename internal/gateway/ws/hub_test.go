package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/dohr-michael/todobrain/internal/brain"
	"github.com/dohr-michael/todobrain/internal/events"
	"github.com/dohr-michael/todobrain/internal/tasks"
)

type staticCompleter string

func (s staticCompleter) Complete(context.Context, string, string, string) (string, error) {
	return string(s), nil
}

func dialHub(t *testing.T, reply string) (*websocket.Conn, *tasks.Store) {
	t.Helper()

	bus := events.NewBus(64)
	t.Cleanup(bus.Close)

	store := tasks.NewStore()
	store.SetBus(bus)
	b := brain.New(brain.NewRouter(staticCompleter(reply), ""), store)

	hub := NewHub(bus, b)
	t.Cleanup(hub.Close)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn, store
}

// readUntil reads frames until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Frame) bool) Frame {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		f, err := UnmarshalFrame(data)
		if err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if match(f) {
			return f
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, f Frame) {
	t.Helper()
	data, err := MarshalFrame(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.Write(context.Background(), websocket.MessageText, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func isResponse(id string) func(Frame) bool {
	return func(f Frame) bool { return f.Type == FrameTypeResponse && f.ID == id }
}

func TestHub_SendMessageRunsBrain(t *testing.T) {
	conn, store := dialHub(t, `{"function":"addTask","parameters":{"description":"Water plants"}}`)

	req, _ := NewRequestFrame("r1", MethodSendMessage, SendMessageParams{Content: "water the plants"})
	send(t, conn, req)

	res := readUntil(t, conn, isResponse("r1"))
	if res.OK == nil || !*res.OK {
		t.Fatalf("expected ok response, got %+v", res)
	}

	var resp brain.Response
	if err := json.Unmarshal(res.Payload, &resp); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if resp.Mode != brain.ModeTool || resp.Reply != "Added “Water plants”." {
		t.Fatalf("unexpected response %+v", resp)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", store.Len())
	}
}

func TestHub_BroadcastsBusEvents(t *testing.T) {
	conn, store := dialHub(t, "")

	// wait for registration before mutating
	req, _ := NewRequestFrame("ping", MethodListTasks, nil)
	send(t, conn, req)
	readUntil(t, conn, isResponse("ping"))

	if _, err := store.Create("Buy milk"); err != nil {
		t.Fatal(err)
	}

	ev := readUntil(t, conn, func(f Frame) bool {
		return f.Type == FrameTypeEvent && f.Event == string(events.EventTaskCreated)
	})

	var e events.Event
	if err := json.Unmarshal(ev.Payload, &e); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if e.Payload["description"] != "Buy milk" {
		t.Fatalf("unexpected payload %v", e.Payload)
	}
}

func TestHub_UnknownMethod(t *testing.T) {
	conn, _ := dialHub(t, "")

	send(t, conn, Frame{Type: FrameTypeRequest, ID: "r2", Method: "rename_task"})

	res := readUntil(t, conn, isResponse("r2"))
	if res.OK == nil || *res.OK {
		t.Fatal("expected ok=false")
	}
	if !strings.Contains(res.Error, "rename_task") {
		t.Fatalf("unexpected error %q", res.Error)
	}
}

func TestHub_InvalidParams(t *testing.T) {
	conn, _ := dialHub(t, "")

	send(t, conn, Frame{Type: FrameTypeRequest, ID: "r3", Method: string(MethodSendMessage), Params: json.RawMessage(`"oops"`)})

	res := readUntil(t, conn, isResponse("r3"))
	if res.OK == nil || *res.OK || res.Error != "invalid params" {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestHub_ClientCount(t *testing.T) {
	bus := events.NewBus(64)
	t.Cleanup(bus.Close)

	hub := NewHub(bus, brain.New(brain.NewRouter(nil, ""), tasks.NewStore()))
	t.Cleanup(hub.Close)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitForClients(t, hub, 1)

	conn.Close(websocket.StatusNormalClosure, "")
	waitForClients(t, hub, 0)
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients: got %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
