package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	applicationhandler "udyam/internal/application/handler"
	applicationmetrics "udyam/internal/application/metrics"
	applicationservice "udyam/internal/application/service"
	applicationstore "udyam/internal/application/store"
	"udyam/internal/audit"
	cataloghandler "udyam/internal/catalog/handler"
	catalogmetrics "udyam/internal/catalog/metrics"
	catalogmodels "udyam/internal/catalog/models"
	catalogservice "udyam/internal/catalog/service"
	catalogstore "udyam/internal/catalog/store"
	documentstore "udyam/internal/document/store"
	"udyam/internal/platform/config"
	"udyam/internal/platform/httpserver"
	"udyam/internal/platform/logger"
	platformmetrics "udyam/internal/platform/metrics"
	"udyam/internal/platform/middleware"
	"udyam/internal/platform/postgres"
	platformredis "udyam/internal/platform/redis"
	startupstore "udyam/internal/startup/store"
	"udyam/internal/token"
	"udyam/pkg/platform/httputil"
)

// catalogBackend is the writable side of a catalog store; seeding needs it in
// addition to the Resolver the service consumes.
type catalogBackend interface {
	catalogstore.Resolver
	Upsert(ctx context.Context, entry *catalogmodels.CatalogEntry) error
}

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stores: PostgreSQL when configured, in-memory otherwise (development).
	var (
		db           *sql.DB
		catalog      catalogBackend
		startups     applicationservice.StartupStore
		documents    applicationservice.DocumentStore
		applications applicationservice.ApplicationStore
	)
	if cfg.Postgres.URL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		catalog = catalogstore.NewPostgres(db)
		startups = startupstore.NewPostgres(db)
		documents = documentstore.NewPostgres(db)
		applications = applicationstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		catalog = catalogstore.NewInMemory()
		startups = startupstore.NewInMemory()
		documents = documentstore.NewInMemory()
		applications = applicationstore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	if err := catalogstore.Seed(ctx, catalog); err != nil {
		log.Error("catalog seeding failed", "error", err)
		os.Exit(1)
	}

	catalogMetrics := catalogmetrics.New()

	// Optional read-through cache in front of the catalog.
	var resolver catalogstore.Resolver = catalog
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		resolver = catalogstore.NewRedisCache(redisClient.Client, catalog, cfg.Redis.CacheTTL, log, catalogMetrics)
		log.Info("catalog cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	// Audit trail, with an optional Kafka fan-out.
	var sinks []audit.Sink
	var kafkaSink *audit.KafkaSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err = audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			log.Error("kafka producer setup failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info("audit kafka sink enabled", "topic", cfg.Kafka.AuditTopic)
	}
	auditor := audit.NewPublisher(audit.NewInMemoryStore(), sinks...)

	catalogSvc := catalogservice.New(resolver,
		catalogservice.WithLogger(log),
		catalogservice.WithMetrics(catalogMetrics),
	)
	workflowSvc := applicationservice.New(applications, startups, documents, catalogSvc,
		applicationservice.WithLogger(log),
		applicationservice.WithMetrics(applicationmetrics.New()),
		applicationservice.WithAudit(auditor),
	)

	tokens := token.NewService(cfg.Server.JWTSigningKey, "udyam", "udyam-portal")
	httpMetrics := platformmetrics.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpMetrics.Middleware)

	r.Get("/health", healthHandler(db, redisClient))
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api", func(r chi.Router) {
		cataloghandler.New(catalogSvc, log).Register(r)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens, log))
			applicationhandler.New(workflowSvc, log).Register(r)
		})
	})

	srv := httpserver.New(cfg.Server.Addr, r)
	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// healthHandler reports process liveness plus the state of the backing
// stores that are actually configured.
func healthHandler(db *sql.DB, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}
		healthy := true

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				checks["postgres"] = "down"
				healthy = false
			} else {
				checks["postgres"] = "up"
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "up"
			}
		}

		status := http.StatusOK
		body := map[string]any{"status": "ok", "checks": checks}
		if !healthy {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
