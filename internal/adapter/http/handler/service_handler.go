package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
)

// ServiceService defines the behavior needed by ServiceHandler.
type ServiceService interface {
	ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error)
}

// ServiceHandler serves the service revenue query.
type ServiceHandler struct {
	serviceUC ServiceService
	loc       *time.Location
	now       func() time.Time
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(serviceUC ServiceService, loc *time.Location) *ServiceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ServiceHandler{serviceUC: serviceUC, loc: loc, now: time.Now}
}

// List handles GET /service?customerName=&start=&end=. Missing bounds
// default to the last seven days through tomorrow.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := serviceFilter(r, h.loc, h.now())
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	services, err := h.serviceUC.ListServices(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, "failed to list services", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ServicesFromDomain(services))
}

func serviceFilter(r *http.Request, loc *time.Location, now time.Time) (domain.ServiceFilter, error) {
	dr, err := queryRange(r, loc, domain.DefaultRevenueRange(now, loc))
	if err != nil {
		return domain.ServiceFilter{}, err
	}
	return domain.ServiceFilter{
		CustomerName: r.URL.Query().Get("customerName"),
		Range:        dr,
	}, nil
}
