package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"udyam/internal/startup/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

// Postgres persists startup records.
//
// Schema:
//
//	CREATE TABLE startups (
//	    id           UUID PRIMARY KEY,
//	    owner_id     UUID NOT NULL,
//	    name         TEXT NOT NULL,
//	    founder_name TEXT NOT NULL DEFAULT '',
//	    email        TEXT NOT NULL DEFAULT '',
//	    phone_number TEXT NOT NULL DEFAULT '',
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed startup store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create registers a startup record.
func (s *Postgres) Create(ctx context.Context, startup *models.Startup) error {
	const q = `
		INSERT INTO startups (id, owner_id, name, founder_name, email, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, q,
		uuid.UUID(startup.ID), uuid.UUID(startup.OwnerID),
		startup.Name, startup.FounderName, startup.Email, startup.PhoneNumber,
		startup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create startup: %w", err)
	}
	return nil
}

// FindByID returns the startup, or sentinel.ErrNotFound.
func (s *Postgres) FindByID(ctx context.Context, id domain.StartupID) (*models.Startup, error) {
	const q = `
		SELECT id, owner_id, name, founder_name, email, phone_number, created_at
		FROM startups
		WHERE id = $1`

	var startup models.Startup
	var sid, ownerID uuid.UUID
	err := s.db.QueryRowContext(ctx, q, uuid.UUID(id)).Scan(
		&sid, &ownerID,
		&startup.Name, &startup.FounderName, &startup.Email, &startup.PhoneNumber,
		&startup.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find startup: %w", err)
	}
	startup.ID = domain.StartupID(sid)
	startup.OwnerID = domain.UserID(ownerID)
	return &startup, nil
}
