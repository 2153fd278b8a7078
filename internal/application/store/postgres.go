package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"udyam/internal/application/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

// Postgres persists applications. application_data and review_history are
// jsonb: the data bag is schema-less by design and the history is always
// read and appended as one unit.
//
// Schema:
//
//	CREATE TABLE applications (
//	    id               UUID PRIMARY KEY,
//	    startup_id       UUID NOT NULL,
//	    sector           TEXT NOT NULL,
//	    application_type TEXT NOT NULL,
//	    application_data JSONB NOT NULL DEFAULT '{}',
//	    status           TEXT NOT NULL DEFAULT 'draft',
//	    submitted_at     TIMESTAMPTZ,
//	    reviewer_comment TEXT NOT NULL DEFAULT '',
//	    review_history   JSONB NOT NULL DEFAULT '[]',
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    updated_at       TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX applications_listing_idx ON applications (status, sector, application_type, created_at DESC);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed application store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const applicationColumns = `
	id, startup_id, sector, application_type, application_data,
	status, submitted_at, reviewer_comment, review_history,
	created_at, updated_at`

// Create stores a new application.
func (s *Postgres) Create(ctx context.Context, app *models.Application) error {
	data, history, err := encodeJSONColumns(app)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO applications (
			id, startup_id, sector, application_type, application_data,
			status, submitted_at, reviewer_comment, review_history,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.db.ExecContext(ctx, q,
		uuid.UUID(app.ID), uuid.UUID(app.StartupID),
		app.Sector, app.ApplicationType, data,
		string(app.Status), app.SubmittedAt, app.ReviewerComment, history,
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// FindByID returns the application, or sentinel.ErrNotFound.
func (s *Postgres) FindByID(ctx context.Context, id domain.ApplicationID) (*models.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(s.db.QueryRowContext(ctx, q, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return app, nil
}

// UpdateFromStatus persists app only if the stored row still has status
// from. Zero rows affected means either the row is gone or another writer
// changed the status first; the two cases are told apart with a follow-up
// existence check so callers get ErrNotFound vs ErrInvalidState.
func (s *Postgres) UpdateFromStatus(ctx context.Context, app *models.Application, from models.Status) error {
	data, history, err := encodeJSONColumns(app)
	if err != nil {
		return err
	}

	const q = `
		UPDATE applications
		SET application_data = $3,
		    status = $4,
		    submitted_at = $5,
		    reviewer_comment = $6,
		    review_history = $7,
		    updated_at = $8
		WHERE id = $1 AND status = $2`

	res, err := s.db.ExecContext(ctx, q,
		uuid.UUID(app.ID), string(from),
		data, string(app.Status), app.SubmittedAt, app.ReviewerComment, history,
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, uuid.UUID(app.ID),
	).Scan(&exists); err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrInvalidState
}

// List returns applications matching the filter, newest-created first.
func (s *Postgres) List(ctx context.Context, filter Filter) ([]models.Application, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != "" {
		conds = append(conds, "status = "+arg(string(filter.Status)))
	}
	if filter.Sector != "" {
		conds = append(conds, "sector = "+arg(filter.Sector))
	}
	if filter.ApplicationType != "" {
		conds = append(conds, "application_type = "+arg(filter.ApplicationType))
	}
	if filter.Q != "" {
		pattern := arg("%" + filter.Q + "%")
		var or []string
		or = append(or, "reviewer_comment ILIKE "+pattern)
		for _, field := range searchableDataFields {
			or = append(or, "application_data->>"+arg(field)+" ILIKE "+pattern)
		}
		conds = append(conds, "("+strings.Join(or, " OR ")+")")
	}

	q := `SELECT ` + applicationColumns + ` FROM applications`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		app         models.Application
		id, startup uuid.UUID
		status      string
		submittedAt sql.NullTime
		data        []byte
		history     []byte
	)
	if err := row.Scan(
		&id, &startup, &app.Sector, &app.ApplicationType, &data,
		&status, &submittedAt, &app.ReviewerComment, &history,
		&app.CreatedAt, &app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	app.ID = domain.ApplicationID(id)
	app.StartupID = domain.StartupID(startup)
	app.Status = models.Status(status)
	if submittedAt.Valid {
		t := submittedAt.Time
		app.SubmittedAt = &t
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &app.ApplicationData); err != nil {
			return nil, fmt.Errorf("decode application_data: %w", err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &app.ReviewHistory); err != nil {
			return nil, fmt.Errorf("decode review_history: %w", err)
		}
	}
	return &app, nil
}

func encodeJSONColumns(app *models.Application) (data, history []byte, err error) {
	appData := app.ApplicationData
	if appData == nil {
		appData = map[string]any{}
	}
	data, err = json.Marshal(appData)
	if err != nil {
		return nil, nil, fmt.Errorf("encode application_data: %w", err)
	}
	entries := app.ReviewHistory
	if entries == nil {
		entries = []models.ReviewEntry{}
	}
	history, err = json.Marshal(entries)
	if err != nil {
		return nil, nil, fmt.Errorf("encode review_history: %w", err)
	}
	return data, history, nil
}
