package dto

import (
	"time"

	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/usecase"
)

// RegisterRequest is the body of POST /register and PUT /register.
// ID is required on PUT and ignored on POST.
type RegisterRequest struct {
	ID          string     `json:"id,omitempty"`
	IsIncoming  bool       `json:"isIncoming"`
	Description string     `json:"description"`
	Value       Number     `json:"value"`
	Date        *time.Time `json:"date,omitempty"`
}

// ToCreateInput converts to use case input.
func (r *RegisterRequest) ToCreateInput() usecase.CreateRegisterInput {
	return usecase.CreateRegisterInput{
		Date:        r.Date,
		Description: r.Description,
		Value:       r.Value.Decimal,
		IsIncoming:  r.IsIncoming,
	}
}

// ToUpdateInput converts to use case input.
func (r *RegisterRequest) ToUpdateInput() usecase.UpdateRegisterInput {
	return usecase.UpdateRegisterInput{
		Date:        r.Date,
		ID:          r.ID,
		Description: r.Description,
		Value:       r.Value.Decimal,
		IsIncoming:  r.IsIncoming,
	}
}

// RegisterResponse is a register entry on the wire.
type RegisterResponse struct {
	ID          string    `json:"id"`
	IsIncoming  bool      `json:"isIncoming"`
	Description string    `json:"description"`
	Value       Number    `json:"value"`
	Date        time.Time `json:"date"`
}

// RegisterFromDomain converts a domain entry to its wire form.
func RegisterFromDomain(e *domain.RegisterEntry) *RegisterResponse {
	return &RegisterResponse{
		ID:          e.ID,
		IsIncoming:  e.IsIncoming,
		Description: e.Description,
		Value:       NewNumber(e.Value),
		Date:        e.Date,
	}
}

// RegistersFromDomain converts domain entries to their wire form.
func RegistersFromDomain(entries []*domain.RegisterEntry) []*RegisterResponse {
	result := make([]*RegisterResponse, len(entries))
	for i, e := range entries {
		result[i] = RegisterFromDomain(e)
	}
	return result
}

// ToDomain converts the wire form back to a domain entry.
func (r *RegisterResponse) ToDomain() *domain.RegisterEntry {
	return &domain.RegisterEntry{
		ID:          r.ID,
		IsIncoming:  r.IsIncoming,
		Description: r.Description,
		Value:       r.Value.Decimal,
		Date:        r.Date,
	}
}

// RegistersToDomain converts a wire list to domain entries.
func RegistersToDomain(items []*RegisterResponse) []*domain.RegisterEntry {
	result := make([]*domain.RegisterEntry, len(items))
	for i, item := range items {
		result[i] = item.ToDomain()
	}
	return result
}
