package usecase

import (
	"context"
	"time"

	"github.com/iho/barberledger/internal/domain"
)

// RegisterRepository defines data access for register entries.
type RegisterRepository interface {
	// Create inserts entry and refreshes it with the stored row.
	Create(ctx context.Context, entry *domain.RegisterEntry) error
	// Update overwrites every field of an existing entry and refreshes it
	// with the stored row. Returns domain.ErrRegisterNotFound when no entry
	// has entry.ID.
	Update(ctx context.Context, entry *domain.RegisterEntry) error
	// Delete removes an entry. Returns domain.ErrRegisterNotFound for an
	// unknown id.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.RegisterEntry, error)
	ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.RegisterEntry, error)
}

// ServiceRepository defines read access to rendered services.
type ServiceRepository interface {
	List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error)
}

// RateProvider fetches the current BRL-per-USD rate.
type RateProvider interface {
	// FetchRate returns domain.ErrRateUnavailable when no usable rate
	// could be obtained.
	FetchRate(ctx context.Context) (domain.ExchangeRate, error)
}

// EventPublisher delivers register events to external systems.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// Recorder receives operational counters.
type Recorder interface {
	RegisterOperation(operation, status string)
	ReportGenerated(kind string)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes a key whose request did not succeed.
	Release(ctx context.Context, key string) error
}
