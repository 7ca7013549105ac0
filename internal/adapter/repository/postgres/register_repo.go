package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/infrastructure/postgres/generated"
)

// RegisterRepository implements usecase.RegisterRepository.
type RegisterRepository struct {
	queries *generated.Queries
}

// NewRegisterRepository creates a new RegisterRepository on a pool or any
// other generated.DBTX.
func NewRegisterRepository(db generated.DBTX) *RegisterRepository {
	return &RegisterRepository{
		queries: generated.New(db),
	}
}

// Create inserts a new entry and copies the stored row back into it.
func (r *RegisterRepository) Create(ctx context.Context, entry *domain.RegisterEntry) error {
	row, err := r.queries.CreateRegister(ctx, generated.CreateRegisterParams{
		ID:          entry.ID,
		IsIncoming:  entry.IsIncoming,
		Description: entry.Description,
		Value:       decimalToNumeric(entry.Value),
		Date:        timeToPgTimestamptz(entry.Date),
	})
	if err != nil {
		return err
	}

	*entry = *rowToRegister(row)
	return nil
}

// Update overwrites an existing entry and copies the stored row back into it.
func (r *RegisterRepository) Update(ctx context.Context, entry *domain.RegisterEntry) error {
	row, err := r.queries.UpdateRegister(ctx, generated.UpdateRegisterParams{
		ID:          entry.ID,
		IsIncoming:  entry.IsIncoming,
		Description: entry.Description,
		Value:       decimalToNumeric(entry.Value),
		Date:        timeToPgTimestamptz(entry.Date),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRegisterNotFound
		}
		return err
	}

	*entry = *rowToRegister(row)
	return nil
}

// Delete removes an entry.
func (r *RegisterRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteRegister(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRegisterNotFound
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *RegisterRepository) GetByID(ctx context.Context, id string) (*domain.RegisterEntry, error) {
	row, err := r.queries.GetRegister(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRegisterNotFound
		}
		return nil, err
	}

	return rowToRegister(row), nil
}

// ListByDescription lists entries whose description contains substr,
// case-insensitively, ordered by date.
func (r *RegisterRepository) ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error) {
	rows, err := r.queries.ListRegistersByDescription(ctx, escapeLike(substr))
	if err != nil {
		return nil, err
	}

	return rowsToRegisters(rows), nil
}

// ListByDateRange lists entries with start <= date <= end.
func (r *RegisterRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.RegisterEntry, error) {
	rows, err := r.queries.ListRegistersByDateRange(ctx, generated.ListRegistersByDateRangeParams{
		StartDate: timeToPgTimestamptz(start),
		EndDate:   timeToPgTimestamptz(end),
	})
	if err != nil {
		return nil, err
	}

	return rowsToRegisters(rows), nil
}

func rowsToRegisters(rows []generated.Register) []*domain.RegisterEntry {
	entries := make([]*domain.RegisterEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToRegister(row))
	}
	return entries
}

func rowToRegister(row generated.Register) *domain.RegisterEntry {
	return &domain.RegisterEntry{
		ID:          row.ID,
		IsIncoming:  row.IsIncoming,
		Description: row.Description,
		Value:       numericToDecimal(row.Value),
		Date:        row.Date.Time.UTC(),
	}
}
