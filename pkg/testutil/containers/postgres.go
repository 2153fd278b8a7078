//go:build integration

// Package containers starts throwaway PostgreSQL and Redis instances for
// integration tests. Containers live for the duration of one suite and are
// torn down via t.Cleanup.
package containers

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	_ "github.com/lib/pq"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// schema is the full portal schema, applied once per container.
const schema = `
CREATE TABLE requirement_catalog (
    sector           TEXT NOT NULL,
    application_type TEXT NOT NULL,
    requirements     JSONB NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (sector, application_type)
);

CREATE TABLE startups (
    id           UUID PRIMARY KEY,
    owner_id     UUID NOT NULL,
    name         TEXT NOT NULL,
    founder_name TEXT NOT NULL DEFAULT '',
    email        TEXT NOT NULL DEFAULT '',
    phone_number TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE applications (
    id               UUID PRIMARY KEY,
    startup_id       UUID NOT NULL,
    sector           TEXT NOT NULL,
    application_type TEXT NOT NULL,
    application_data JSONB NOT NULL DEFAULT '{}',
    status           TEXT NOT NULL DEFAULT 'draft',
    submitted_at     TIMESTAMPTZ,
    reviewer_comment TEXT NOT NULL DEFAULT '',
    review_history   JSONB NOT NULL DEFAULT '[]',
    created_at       TIMESTAMPTZ NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX applications_listing_idx ON applications (status, sector, application_type, created_at DESC);

CREATE TABLE documents (
    id                    UUID PRIMARY KEY,
    application_id        UUID NOT NULL,
    startup_id            UUID NOT NULL,
    doc_category_declared TEXT NOT NULL,
    doc_category_detected TEXT NOT NULL DEFAULT '',
    verified_status       TEXT NOT NULL DEFAULT 'unverified',
    file_name             TEXT NOT NULL DEFAULT '',
    file_url              TEXT NOT NULL DEFAULT '',
    page_count            INT NOT NULL DEFAULT 0,
    created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX documents_application_idx ON documents (application_id, created_at);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// portal schema applied.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DB        *sql.DB
	URL       string
}

// NewPostgresContainer starts a PostgreSQL container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("udyam_test"),
		tcpostgres.WithUsername("udyam"),
		tcpostgres.WithPassword("udyam"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{Container: container, DB: db, URL: url}
}

// TruncateTables empties the given tables. Use between tests for isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	_, err := p.DB.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", "))
	return err
}
