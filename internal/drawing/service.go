// Package drawing exposes stored drawings over HTTP.
package drawing

import (
	"context"
	"fmt"

	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List(ctx context.Context) ([]store.Info, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	if infos == nil {
		infos = []store.Info{}
	}
	return infos, nil
}

func (s *Service) Get(ctx context.Context, name string) (*document.Document, error) {
	return s.store.Load(ctx, name)
}

// Put stores doc under name after checking that every shape in it builds.
func (s *Service) Put(ctx context.Context, name string, doc *document.Document) error {
	if _, err := doc.Build(); err != nil {
		return fmt.Errorf("put drawing %q: %w", name, err)
	}
	return s.store.Save(ctx, name, doc)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}
