package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sketchpad/sketchpad/internal/document"
)

const schema = `
CREATE TABLE IF NOT EXISTS drawings (
	name       TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres keeps drawings in the drawings table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL and creates the table if missing.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create drawings table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Save(ctx context.Context, name string, doc *document.Document) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	doc.Name = name
	doc.Touch()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO drawings (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document, updated_at = now()`,
		name, data)
	if err != nil {
		return fmt.Errorf("save drawing %q: %w", name, err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, name string) (*document.Document, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT document FROM drawings WHERE name = $1`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("load drawing %q: %w", name, err)
	}
	doc, err := document.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load drawing %q: %w", name, err)
	}
	return doc, nil
}

func (p *Postgres) List(ctx context.Context) ([]Info, error) {
	rows, err := p.pool.Query(ctx, `SELECT name, updated_at FROM drawings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	infos, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Info])
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	return infos, nil
}

func (p *Postgres) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `DELETE FROM drawings WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete drawing %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
