package postgres

import (
	"context"

	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/infrastructure/postgres/generated"
)

// ServiceRepository implements usecase.ServiceRepository. Services and
// customers are written elsewhere; this side only reads them.
type ServiceRepository struct {
	queries *generated.Queries
}

// NewServiceRepository creates a new ServiceRepository.
func NewServiceRepository(db generated.DBTX) *ServiceRepository {
	return &ServiceRepository{
		queries: generated.New(db),
	}
}

// List returns services whose customer name contains filter.CustomerName
// and whose date lies in filter.Range.
func (r *ServiceRepository) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error) {
	rows, err := r.queries.ListServices(ctx, generated.ListServicesParams{
		CustomerPattern: escapeLike(filter.CustomerName),
		StartDate:       timeToPgTimestamptz(filter.Range.Start),
		EndDate:         timeToPgTimestamptz(filter.Range.End),
	})
	if err != nil {
		return nil, err
	}

	services := make([]*domain.ServiceRecord, 0, len(rows))
	for _, row := range rows {
		services = append(services, &domain.ServiceRecord{
			ID:           row.ID,
			CustomerName: row.CustomerName,
			Value:        numericToDecimal(row.Value),
			Types:        row.Type,
			Payments:     row.Payment,
			Date:         row.Date.Time.UTC(),
		})
	}

	return services, nil
}
