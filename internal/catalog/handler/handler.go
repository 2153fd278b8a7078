package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"udyam/internal/catalog/models"
	"udyam/pkg/platform/httputil"
	"udyam/pkg/requestcontext"
)

// Service defines the interface for requirement catalog operations.
type Service interface {
	Resolve(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error)
	CommonSubset(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error)
}

// Handler wires requirement catalog endpoints to the catalog service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a catalog handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts catalog endpoints on the router. Requirement browsing is
// public: applicants consult checklists before they authenticate.
func (h *Handler) Register(r chi.Router) {
	r.Get("/requirements/{sector}/{application_type}", h.HandleResolve)
	r.Get("/requirements/{sector}/{application_type}/common", h.HandleCommon)
}

// HandleResolve handles GET /requirements/{sector}/{application_type}.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sector := chi.URLParam(r, "sector")
	applicationType := chi.URLParam(r, "application_type")

	entry, err := h.service.Resolve(ctx, sector, applicationType)
	if err != nil {
		h.logger.WarnContext(ctx, "requirement resolution failed",
			"request_id", requestcontext.RequestID(ctx),
			"sector", sector,
			"application_type", applicationType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromEntry(entry))
}

// HandleCommon handles GET /requirements/{sector}/{application_type}/common.
func (h *Handler) HandleCommon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sector := chi.URLParam(r, "sector")
	applicationType := chi.URLParam(r, "application_type")

	subset, err := h.service.CommonSubset(ctx, sector, applicationType)
	if err != nil {
		h.logger.WarnContext(ctx, "common requirement resolution failed",
			"request_id", requestcontext.RequestID(ctx),
			"sector", sector,
			"application_type", applicationType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromEntry(subset))
}
