package gateway

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/dohr-michael/todobrain/internal/brain"
	"github.com/dohr-michael/todobrain/internal/events"
	"github.com/dohr-michael/todobrain/internal/gateway/ws"
	"github.com/dohr-michael/todobrain/internal/tasks"
	"github.com/dohr-michael/todobrain/static"
)

// Options configures the gateway server.
type Options struct {
	Host      string
	Port      int
	StaticDir string     // serve the UI from disk instead of the embedded copy
	RateLimit rate.Limit // brain requests per second, rate.Inf disables limiting
	Burst     int
}

// Server is the todobrain HTTP server.
type Server struct {
	httpServer *http.Server
	hub        *ws.Hub
	bus        *events.Bus
	store      *tasks.Store
	brain      *brain.Brain
	limiter    *rate.Limiter
}

// NewServer creates a new gateway server.
func NewServer(bus *events.Bus, store *tasks.Store, b *brain.Brain, opts Options) *Server {
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Inf
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	s := &Server{
		hub:     ws.NewHub(bus, b),
		bus:     bus,
		store:   store,
		brain:   b,
		limiter: rate.NewLimiter(opts.RateLimit, opts.Burst),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/events", s.handleEvents)
	r.Get("/api/ws", s.hub.ServeWS)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", s.handleListTasks)
		r.Post("/", s.handleCreateTask)
		r.Patch("/by-description", s.handleCompleteTask)
		r.Delete("/by-description", s.handleDeleteTask)
	})

	r.With(s.rateLimit).Post("/api/brain/execute", s.handleBrainExecute)

	r.Handle("/*", http.FileServer(http.FS(uiFS(opts.StaticDir))))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func uiFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return static.Files
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("todobrain gateway listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	router := s.brain.Router()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"llm":     router.Available(),
		"model":   router.Model(),
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	history := s.bus.History(limit)

	type eventJSON struct {
		ID        string             `json:"id"`
		Type      string             `json:"type"`
		Timestamp string             `json:"timestamp"`
		Source    events.EventSource `json:"source"`
		Payload   map[string]any     `json:"payload"`
	}

	result := make([]eventJSON, len(history))
	for i, e := range history {
		result[i] = eventJSON{
			ID:        e.ID,
			Type:      string(e.Type),
			Timestamp: e.Timestamp.Format(time.RFC3339Nano),
			Source:    e.Source,
			Payload:   e.Payload,
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// ThrottledReply answers brain requests above the configured rate.
const ThrottledReply = "I'm getting too many requests right now, try again in a moment."

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			slog.Warn("brain request throttled", "remote", r.RemoteAddr)
			writeJSON(w, http.StatusOK, brain.Response{Mode: brain.ModeText, Reply: ThrottledReply})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
