package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"udyam/internal/catalog/metrics"
	"udyam/internal/catalog/models"
	"udyam/internal/catalog/store"
	dErrors "udyam/pkg/domain-errors"
	"udyam/pkg/platform/sentinel"
)

// Service resolves requirement checklists for clients and for the
// application workflow. Lookup is exact-match on the pair; there is no
// fuzzy fallback.
type Service struct {
	resolver store.Resolver
	common   map[string]bool
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCommonCategories overrides the cross-sector common set (tests).
func WithCommonCategories(common map[string]bool) Option {
	return func(s *Service) { s.common = common }
}

// New constructs a catalog service over the given resolver (a store, or a
// cache wrapping one).
func New(resolver store.Resolver, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		common:   store.CommonCategories,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the checklist for the pair, or a not_found domain error
// naming the pair. Callers must treat not_found as "no requirements
// defined", never as an empty checklist.
func (s *Service) Resolve(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error) {
	entry, err := s.resolver.Resolve(ctx, sector, applicationType)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordResolve("not_found")
			return nil, dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("no document requirements found for %s (%s)", sector, applicationType))
		}
		s.metrics.RecordResolve("error")
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to resolve requirements", err)
	}
	s.metrics.RecordResolve("found")
	return entry, nil
}

// CommonSubset returns the requirements of the pair whose doc category is in
// the cross-sector common set, letting clients render the shared base
// checklist before sector-specific items.
func (s *Service) CommonSubset(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error) {
	entry, err := s.Resolve(ctx, sector, applicationType)
	if err != nil {
		return nil, err
	}

	subset := models.CatalogEntry{Sector: sector, ApplicationType: applicationType}
	for _, r := range entry.Requirements {
		if s.common[r.DocCategory] {
			subset.Requirements = append(subset.Requirements, r)
		}
	}
	return &subset, nil
}
