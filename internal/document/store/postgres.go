package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"udyam/internal/document/models"
	"udyam/pkg/domain"
	"udyam/pkg/platform/sentinel"
)

// Postgres persists document records.
//
// Schema:
//
//	CREATE TABLE documents (
//	    id                    UUID PRIMARY KEY,
//	    application_id        UUID NOT NULL,
//	    startup_id            UUID NOT NULL,
//	    doc_category_declared TEXT NOT NULL,
//	    doc_category_detected TEXT NOT NULL DEFAULT '',
//	    verified_status       TEXT NOT NULL DEFAULT 'unverified',
//	    file_name             TEXT NOT NULL DEFAULT '',
//	    file_url              TEXT NOT NULL DEFAULT '',
//	    page_count            INT NOT NULL DEFAULT 0,
//	    created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX documents_application_idx ON documents (application_id, created_at);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create links an uploaded document to its application.
func (s *Postgres) Create(ctx context.Context, doc *models.Document) error {
	const q = `
		INSERT INTO documents (
			id, application_id, startup_id,
			doc_category_declared, doc_category_detected, verified_status,
			file_name, file_url, page_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, q,
		uuid.UUID(doc.ID), uuid.UUID(doc.ApplicationID), uuid.UUID(doc.StartupID),
		doc.DocCategoryDeclared, doc.DocCategoryDetected, string(doc.VerifiedStatus),
		doc.FileName, doc.FileURL, doc.PageCount, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// ListByApplication returns all documents linked to the application, oldest first.
func (s *Postgres) ListByApplication(ctx context.Context, applicationID domain.ApplicationID) ([]models.Document, error) {
	const q = `
		SELECT id, application_id, startup_id,
		       doc_category_declared, doc_category_detected, verified_status,
		       file_name, file_url, page_count, created_at
		FROM documents
		WHERE application_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, q, uuid.UUID(applicationID))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var doc models.Document
		var id, appID, startupID uuid.UUID
		var status string
		if err := rows.Scan(
			&id, &appID, &startupID,
			&doc.DocCategoryDeclared, &doc.DocCategoryDetected, &status,
			&doc.FileName, &doc.FileURL, &doc.PageCount, &doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ID = domain.DocumentID(id)
		doc.ApplicationID = domain.ApplicationID(appID)
		doc.StartupID = domain.StartupID(startupID)
		doc.VerifiedStatus = models.VerifiedStatus(status)
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

// UpdateVerifiedStatus records the outcome of the external verification workflow.
func (s *Postgres) UpdateVerifiedStatus(ctx context.Context, id domain.DocumentID, status models.VerifiedStatus, detectedCategory string) error {
	const q = `
		UPDATE documents
		SET verified_status = $2,
		    doc_category_detected = CASE WHEN $3 = '' THEN doc_category_detected ELSE $3 END
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, uuid.UUID(id), string(status), detectedCategory)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
