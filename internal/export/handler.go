// Package export renders drawings to PNG and PDF files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/render/pdf"
	"github.com/sketchpad/sketchpad/internal/render/raster"
	"github.com/sketchpad/sketchpad/internal/style"
)

const maxUploadSize = 10 << 20 // 10MB

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == PDF {
		return "application/pdf"
	}
	return "image/png"
}

// Write renders every shape of doc, bottom to top, onto a width x height
// page in the given format.
func Write(w io.Writer, f Format, doc *document.Document, width, height int) error {
	shapes, err := doc.Build()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	ctx := render.Identity()
	switch f {
	case PNG:
		sink := raster.New(width, height, style.White)
		for _, s := range shapes {
			s.Render(sink, ctx)
		}
		return sink.EncodePNG(w)
	case PDF:
		sink := pdf.New(width, height)
		for _, s := range shapes {
			s.Render(sink, ctx)
		}
		return sink.Write(w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Sanitize maps a drawing name onto a safe download file name.
func Sanitize(name string) string {
	if name == "" {
		return "drawing"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}

// Serve renders doc and streams it back as an attachment.
func Serve(w http.ResponseWriter, f Format, name string, doc *document.Document, width, height int) {
	var buf bytes.Buffer
	if err := Write(&buf, f, doc, width, height); err != nil {
		slog.Error("export failed", "format", f, "error", err)
		http.Error(w, "export failed", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, Sanitize(name), f))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())

	slog.Info("export complete", "format", f, "shapes", len(doc.Shapes), "size", buf.Len())
}

type Handler struct {
	width, height int
}

func NewHandler(width, height int) *Handler {
	return &Handler{width: width, height: height}
}

// ExportDocument handles POST /export/{format} with a document JSON body.
// Optional width and height query parameters override the page size.
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	f, err := ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		http.Error(w, "invalid format: must be png or pdf", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	doc, err := document.Decode(r.Body)
	if err != nil {
		http.Error(w, "invalid document: "+err.Error(), http.StatusBadRequest)
		return
	}

	width := dimension(r.URL.Query().Get("width"), h.width)
	height := dimension(r.URL.Query().Get("height"), h.height)

	slog.Info("export started", "format", f, "shapes", len(doc.Shapes), "width", width, "height", height)
	Serve(w, f, doc.Name, doc, width, height)
}

func dimension(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v > 8192 {
		return fallback
	}
	return v
}
