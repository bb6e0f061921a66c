package export

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchpad/sketchpad/internal/document"
)

func router(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/export/{format}", h.ExportDocument).Methods("POST")
	return r
}

func sampleBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	doc := document.NewSampleDocument()
	doc.Name = "my sample!"
	require.NoError(t, document.Encode(&buf, doc))
	return &buf
}

func TestExportPNG(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/export/png?width=640&height=480", sampleBody(t))
	router(NewHandler(1280, 720)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="my-sample-.png"`, rec.Header().Get("Content-Disposition"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestExportPDF(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/export/PDF", sampleBody(t))
	router(NewHandler(1280, 720)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestExportRejectsBadInput(t *testing.T) {
	h := router(NewHandler(100, 100))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export/gif", sampleBody(t)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export/png", strings.NewReader(`{"version":7}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	body := `{"version":1,"shapes":[{"type":"blob"}]}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export/png", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Png")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	_, err = ParseFormat("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, "drawing", Sanitize(""))
}
