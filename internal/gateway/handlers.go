package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dohr-michael/todobrain/internal/tasks"
)

type descriptionRequest struct {
	Description string `json:"description"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tasks": s.store.List()})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	decodeJSON(r, &req)

	t, err := s.store.Create(req.Description)
	if err != nil {
		writeTaskErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	desc, ok := requireDescription(w, r)
	if !ok {
		return
	}

	t, err := s.store.Complete(desc)
	if err != nil {
		writeTaskErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	desc, ok := requireDescription(w, r)
	if !ok {
		return
	}

	if _, err := s.store.Delete(desc); err != nil {
		writeTaskErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deletedDescription": desc})
}

func (s *Server) handleBrainExecute(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	decodeJSON(r, &req)

	writeJSON(w, http.StatusOK, s.brain.Handle(r.Context(), req.Message))
}

// requireDescription decodes the body and writes a 400 when no description
// is present.
func requireDescription(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req descriptionRequest
	decodeJSON(r, &req)

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		writeErr(w, http.StatusBadRequest, "description is required")
		return "", false
	}
	return desc, true
}

func writeTaskErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tasks.ErrValidation):
		writeErr(w, http.StatusBadRequest, "description is required")
	case errors.Is(err, tasks.ErrNotFound):
		writeErr(w, http.StatusNotFound, "task not found")
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// decodeJSON fills out from the request body. A missing or malformed body
// leaves out untouched, so handlers see an empty request.
func decodeJSON(r *http.Request, out any) {
	if r.Body == nil {
		return
	}
	_ = json.NewDecoder(r.Body).Decode(out)
}
