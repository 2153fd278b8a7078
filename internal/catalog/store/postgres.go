package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"udyam/internal/catalog/models"
	"udyam/pkg/platform/sentinel"
)

// Postgres persists catalog entries. The requirement checklist is stored as
// a jsonb column because it is always read and written as one ordered unit.
//
// Schema:
//
//	CREATE TABLE requirement_catalog (
//	    sector           TEXT NOT NULL,
//	    application_type TEXT NOT NULL,
//	    requirements     JSONB NOT NULL,
//	    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (sector, application_type)
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Resolve returns the entry for the exact (sector, application_type) pair,
// or sentinel.ErrNotFound.
func (s *Postgres) Resolve(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error) {
	const q = `
		SELECT requirements
		FROM requirement_catalog
		WHERE sector = $1 AND application_type = $2`

	var raw []byte
	err := s.db.QueryRowContext(ctx, q, sector, applicationType).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("resolve catalog entry: %w", err)
	}

	entry := models.CatalogEntry{Sector: sector, ApplicationType: applicationType}
	if err := json.Unmarshal(raw, &entry.Requirements); err != nil {
		return nil, fmt.Errorf("decode catalog requirements: %w", err)
	}
	return &entry, nil
}

// Upsert publishes or replaces an entry.
func (s *Postgres) Upsert(ctx context.Context, entry *models.CatalogEntry) error {
	raw, err := json.Marshal(entry.Requirements)
	if err != nil {
		return fmt.Errorf("encode catalog requirements: %w", err)
	}

	const q = `
		INSERT INTO requirement_catalog (sector, application_type, requirements, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sector, application_type)
		DO UPDATE SET requirements = EXCLUDED.requirements, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, q, entry.Sector, entry.ApplicationType, raw); err != nil {
		return fmt.Errorf("upsert catalog entry: %w", err)
	}
	return nil
}
