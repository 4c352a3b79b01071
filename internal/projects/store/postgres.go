package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

// PostgresStore keeps each project as a JSONB document. owner_id and
// updated_at are lifted into columns for listing.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS doc_projects (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS doc_projects_owner_idx ON doc_projects (owner_id, updated_at DESC);
`

// EnsureSchema creates the table on first start.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `SELECT doc FROM doc_projects WHERE id = $1`
	var raw []byte
	if err := s.pool.QueryRow(ctx, q, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return decodeProject(raw)
}

func (s *PostgresStore) Set(ctx context.Context, project *domain.Project) error {
	const q = `
INSERT INTO doc_projects (id, owner_id, doc, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET owner_id = EXCLUDED.owner_id, doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at;
`
	doc, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if _, err := s.pool.Exec(ctx, q, project.ID, project.OwnerID, doc, project.UpdatedAt); err != nil {
		return fmt.Errorf("failed to set project: %w", err)
	}
	return nil
}

// Update locks the row, applies the patch and writes it back in one
// transaction.
func (s *PostgresStore) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var raw []byte
		if err := tx.QueryRow(ctx, `SELECT doc FROM doc_projects WHERE id = $1 FOR UPDATE`, id).Scan(&raw); err != nil {
			return pgErr(err)
		}
		doc, updatedAt, err := mergeDoc(raw, patch)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE doc_projects SET doc = $2, updated_at = $3 WHERE id = $1`, id, doc, updatedAt)
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return err
}

// mergeDoc applies patch to a stored document. The returned time is the
// document's updated_at, which the column mirrors.
func mergeDoc(raw []byte, patch domain.ProjectPatch) ([]byte, time.Time, error) {
	p, err := decodeProject(raw)
	if err != nil {
		return nil, time.Time{}, err
	}
	patch.Apply(p)
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to marshal project: %w", err)
	}
	return doc, p.UpdatedAt, nil
}

func pgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `SELECT doc FROM doc_projects WHERE owner_id = $1 ORDER BY updated_at DESC`
	rows, err := s.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		p, err := decodeProject(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM doc_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
