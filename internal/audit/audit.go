// Package audit captures structured workflow events next to the aggregate's
// own review history. The in-process store is the source of truth; sinks
// (Kafka) fan events out for downstream consumers and are fail-open.
package audit

import (
	"context"
	"time"

	"udyam/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time            `json:"timestamp"`
	ActorID       domain.UserID        `json:"actor_id"`
	ActorRole     domain.Role          `json:"actor_role"`
	Action        string               `json:"action"`
	ApplicationID domain.ApplicationID `json:"application_id"`
	StartupID     domain.StartupID     `json:"startup_id,omitempty"`
	Detail        string               `json:"detail,omitempty"`
}

// Store persists audit events append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByApplication(ctx context.Context, id domain.ApplicationID) ([]Event, error)
}

// Sink receives events after they are persisted. Sink failures are logged
// by the sink itself and never fail the emitting operation.
type Sink interface {
	Publish(ctx context.Context, event Event)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	sinks []Sink
}

// NewPublisher constructs a publisher over the given store and optional sinks.
func NewPublisher(store Store, sinks ...Sink) *Publisher {
	return &Publisher{store: store, sinks: sinks}
}

// Emit persists the event and fans it out to sinks.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		sink.Publish(ctx, event)
	}
	return nil
}

// List returns the audit trail of one application.
func (p *Publisher) List(ctx context.Context, id domain.ApplicationID) ([]Event, error) {
	return p.store.ListByApplication(ctx, id)
}
