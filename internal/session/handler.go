package session

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sketchpad/sketchpad/internal/auth"
	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/export"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/store"
)

type Handler struct {
	manager        *Manager
	tokens         *auth.Service
	store          store.Store
	exportWidth    int
	exportHeight   int
	originPatterns []string
}

func NewHandler(manager *Manager, tokens *auth.Service, st store.Store, exportWidth, exportHeight int, originPatterns []string) *Handler {
	return &Handler{
		manager:        manager,
		tokens:         tokens,
		store:          st,
		exportWidth:    exportWidth,
		exportHeight:   exportHeight,
		originPatterns: originPatterns,
	}
}

type createRequest struct {
	// Drawing names a stored drawing to start from.
	Drawing string `json:"drawing"`
	// Sample starts from the built-in sample drawing.
	Sample bool `json:"sample"`
}

type createResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Create handles POST /api/sessions. The body is optional.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var seed *document.Document
	switch {
	case req.Drawing != "":
		doc, err := h.store.Load(r.Context(), req.Drawing)
		if err != nil {
			handleError(w, err)
			return
		}
		seed = doc
	case req.Sample:
		seed = document.NewSampleDocument()
	}

	id, token, err := h.manager.Create(seed)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: id, Token: token})
}

// Connect handles GET /ws/session/{sessionId}?token=...
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	token, ok := auth.TokenFromRequest(r)
	if !ok {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	subject, err := h.tokens.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if subject != sessionID {
		http.Error(w, "token is for another session", http.StatusForbidden)
		return
	}

	sess, err := h.manager.Get(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(sess, conn, uuid.New().String())
	if err := sess.Join(client); err != nil {
		conn.Close(websocket.StatusGoingAway, "session closed")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// Export handles GET /api/sessions/{sessionId}/export.{format}.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	f, err := export.ParseFormat(vars["format"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid format: must be png or pdf"})
		return
	}

	sess, err := h.manager.Get(vars["sessionId"])
	if err != nil {
		handleError(w, err)
		return
	}
	doc, err := sess.Document(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	export.Serve(w, f, sess.ID, doc, h.exportWidth, h.exportHeight)
}

// Close handles DELETE /api/sessions/{sessionId}.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(mux.Vars(r)["sessionId"]); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrClosed):
		writeJSON(w, http.StatusGone, map[string]string{"error": "session closed"})
	case errors.Is(err, store.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid drawing name"})
	case errors.Is(err, document.ErrUnknownKind), errors.Is(err, document.ErrMissingGeometry),
		errors.Is(err, document.ErrUnsupportedVersion), errors.Is(err, shape.ErrNoAnchors):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		slog.Error("session error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
