package usecase

import (
	"context"

	"github.com/iho/barberledger/internal/domain"
)

// ServiceUseCase exposes the read side of rendered services.
type ServiceUseCase struct {
	serviceRepo ServiceRepository
}

// NewServiceUseCase creates a new ServiceUseCase.
func NewServiceUseCase(serviceRepo ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{serviceRepo: serviceRepo}
}

// ListServices returns services matching both the customer name substring
// and the inclusive date range.
func (uc *ServiceUseCase) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error) {
	if filter.Range.IsEmpty() {
		return []*domain.ServiceRecord{}, nil
	}

	services, err := uc.serviceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return nonNil(services), nil
}
