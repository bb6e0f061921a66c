package drawing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/store"
)

const maxBodySize = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("list drawings failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, infos)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	document.Encode(w, doc)
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	doc, err := document.Decode(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.service.Put(r.Context(), name, doc); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, store.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid drawing name"})
	case errors.Is(err, document.ErrUnknownKind), errors.Is(err, document.ErrMissingGeometry),
		errors.Is(err, shape.ErrNoAnchors), errors.Is(err, document.ErrUnsupportedVersion):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
