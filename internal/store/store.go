// Package store persists drawings by name.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sketchpad/sketchpad/internal/document"
)

var (
	ErrNotFound    = errors.New("drawing not found")
	ErrInvalidName = errors.New("invalid drawing name")
)

const maxNameLen = 128

// Info describes a stored drawing.
type Info struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store interface {
	Save(ctx context.Context, name string, doc *document.Document) error
	Load(ctx context.Context, name string) (*document.Document, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
}

// ValidateName accepts names made of letters, digits, '-' and '_'.
func ValidateName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			continue
		}
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
