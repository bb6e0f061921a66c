package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sketchpad/sketchpad/internal/document"
)

const fileExt = ".sketch.json"

// Files keeps one JSON file per drawing in a directory.
type Files struct {
	dir string
}

// NewFiles creates dir if needed.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create drawing dir: %w", err)
	}
	return &Files{dir: dir}, nil
}

func (f *Files) path(name string) string {
	return filepath.Join(f.dir, name+fileExt)
}

// Save writes the drawing to a temp file and renames it into place, so a
// failed write never clobbers the previous version.
func (f *Files) Save(ctx context.Context, name string, doc *document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	doc.Name = name
	doc.Touch()

	tmp, err := os.CreateTemp(f.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := document.Encode(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		return fmt.Errorf("save drawing %q: %w", name, err)
	}
	return nil
}

func (f *Files) Load(ctx context.Context, name string) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(f.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open drawing %q: %w", name, err)
	}
	defer file.Close()

	doc, err := document.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("load drawing %q: %w", name, err)
	}
	return doc, nil
}

func (f *Files) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), fileExt)
		if !ok || e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: name, UpdatedAt: fi.ModTime().UTC()})
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

func (f *Files) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(f.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("delete drawing %q: %w", name, err)
	}
	return nil
}
