package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/barberledger/internal/domain"
)

// RegisterUseCase handles register entry business logic.
//
// Concurrent edits of the same entry are last-write-wins: there is no
// version check on update or delete.
type RegisterUseCase struct {
	registerRepo RegisterRepository
	idGen        IDGenerator
	publisher    EventPublisher
	retrier      Retrier
	recorder     Recorder
	now          func() time.Time
}

// NewRegisterUseCase creates a new RegisterUseCase. publisher, retrier and
// recorder may be nil.
func NewRegisterUseCase(
	registerRepo RegisterRepository,
	idGen IDGenerator,
	publisher EventPublisher,
	retrier Retrier,
	recorder Recorder,
) *RegisterUseCase {
	return &RegisterUseCase{
		registerRepo: registerRepo,
		idGen:        idGen,
		publisher:    publisher,
		retrier:      retrier,
		recorder:     recorder,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for default dates and event timestamps.
func (uc *RegisterUseCase) WithClock(now func() time.Time) *RegisterUseCase {
	uc.now = now
	return uc
}

// CreateRegisterInput represents input for creating a register entry.
type CreateRegisterInput struct {
	Date        *time.Time
	Description string
	Value       decimal.Decimal
	IsIncoming  bool
}

// UpdateRegisterInput represents input for editing a register entry.
// A nil Date keeps the stored date.
type UpdateRegisterInput struct {
	Date        *time.Time
	ID          string
	Description string
	Value       decimal.Decimal
	IsIncoming  bool
}

// CreateRegister validates and records a new entry. Date defaults to now.
// The returned entry holds the values as stored.
func (uc *RegisterUseCase) CreateRegister(ctx context.Context, input CreateRegisterInput) (*domain.RegisterEntry, error) {
	if err := domain.ValidateRegister(input.Description, input.Value).Err(); err != nil {
		return nil, err
	}

	date := uc.now()
	if input.Date != nil {
		date = *input.Date
	}

	entry := &domain.RegisterEntry{
		ID:          uc.idGen.Generate(),
		IsIncoming:  input.IsIncoming,
		Description: input.Description,
		Value:       input.Value,
		Date:        domain.StoredDate(date),
	}

	err := uc.retry(ctx, func() error {
		return uc.registerRepo.Create(ctx, entry)
	})
	uc.record(OperationCreate, err)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventTypeRegisterCreated, entry)

	return entry, nil
}

// UpdateRegister overwrites the editable fields of an entry.
func (uc *RegisterUseCase) UpdateRegister(ctx context.Context, input UpdateRegisterInput) (*domain.RegisterEntry, error) {
	if err := domain.ValidateRegister(input.Description, input.Value).Err(); err != nil {
		return nil, err
	}

	var date time.Time
	if input.Date != nil {
		date = domain.StoredDate(*input.Date)
	} else {
		existing, err := uc.registerRepo.GetByID(ctx, input.ID)
		if err != nil {
			uc.record(OperationUpdate, err)
			return nil, err
		}
		date = existing.Date
	}

	entry := &domain.RegisterEntry{
		ID:          input.ID,
		IsIncoming:  input.IsIncoming,
		Description: input.Description,
		Value:       input.Value,
		Date:        date,
	}

	err := uc.retry(ctx, func() error {
		return uc.registerRepo.Update(ctx, entry)
	})
	uc.record(OperationUpdate, err)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventTypeRegisterUpdated, entry)

	return entry, nil
}

// DeleteRegister removes an entry permanently.
func (uc *RegisterUseCase) DeleteRegister(ctx context.Context, id string) error {
	err := uc.retry(ctx, func() error {
		return uc.registerRepo.Delete(ctx, id)
	})
	uc.record(OperationDelete, err)
	if err != nil {
		return err
	}

	uc.publish(ctx, domain.EventTypeRegisterDeleted, &domain.RegisterEntry{ID: id})

	return nil
}

// GetRegister retrieves an entry by ID.
func (uc *RegisterUseCase) GetRegister(ctx context.Context, id string) (*domain.RegisterEntry, error) {
	return uc.registerRepo.GetByID(ctx, id)
}

// ListByDescription lists entries whose description contains substr,
// ignoring case. An empty substr lists everything.
func (uc *RegisterUseCase) ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error) {
	entries, err := uc.registerRepo.ListByDescription(ctx, substr)
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

// ListByDateRange lists entries dated inside r, bounds included.
// A range whose start is after its end yields no entries.
func (uc *RegisterUseCase) ListByDateRange(ctx context.Context, r domain.DateRange) ([]*domain.RegisterEntry, error) {
	if r.IsEmpty() {
		return []*domain.RegisterEntry{}, nil
	}

	entries, err := uc.registerRepo.ListByDateRange(ctx, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

func (uc *RegisterUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}
	return uc.retrier.Retry(ctx, op)
}

func (uc *RegisterUseCase) record(operation string, err error) {
	if uc.recorder == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	uc.recorder.RegisterOperation(operation, status)
}

// publish emits a register event. Delivery failures are logged only; the
// mutation has already been committed.
func (uc *RegisterUseCase) publish(ctx context.Context, eventType string, entry *domain.RegisterEntry) {
	if uc.publisher == nil {
		return
	}

	event := domain.NewRegisterEvent(uc.idGen.Generate(), eventType, entry, uc.now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", eventType).
			Str("register_id", entry.ID).
			Msg("failed to publish register event")
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
