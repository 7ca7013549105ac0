package dto

import (
	"time"

	"github.com/iho/barberledger/internal/domain"
)

// ServiceResponse is a rendered service on the wire.
type ServiceResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Value        Number    `json:"value"`
	Type         []string  `json:"type"`
	Payment      []string  `json:"payment"`
	Date         time.Time `json:"date"`
}

// ServiceFromDomain converts a domain service to its wire form.
func ServiceFromDomain(s *domain.ServiceRecord) *ServiceResponse {
	return &ServiceResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		Value:        NewNumber(s.Value),
		Type:         nonNilStrings(s.Types),
		Payment:      nonNilStrings(s.Payments),
		Date:         s.Date,
	}
}

// ServicesFromDomain converts domain services to their wire form.
func ServicesFromDomain(services []*domain.ServiceRecord) []*ServiceResponse {
	result := make([]*ServiceResponse, len(services))
	for i, s := range services {
		result[i] = ServiceFromDomain(s)
	}
	return result
}

// ToDomain converts the wire form back to a domain service.
func (r *ServiceResponse) ToDomain() *domain.ServiceRecord {
	return &domain.ServiceRecord{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Value:        r.Value.Decimal,
		Types:        r.Type,
		Payments:     r.Payment,
		Date:         r.Date,
	}
}

// ServicesToDomain converts a wire list to domain services.
func ServicesToDomain(items []*ServiceResponse) []*domain.ServiceRecord {
	result := make([]*domain.ServiceRecord, len(items))
	for i, item := range items {
		result[i] = item.ToDomain()
	}
	return result
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
