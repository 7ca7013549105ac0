package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/usecase"
)

// RegisterService defines the behavior needed by RegisterHandler.
type RegisterService interface {
	CreateRegister(ctx context.Context, input usecase.CreateRegisterInput) (*domain.RegisterEntry, error)
	UpdateRegister(ctx context.Context, input usecase.UpdateRegisterInput) (*domain.RegisterEntry, error)
	DeleteRegister(ctx context.Context, id string) error
	GetRegister(ctx context.Context, id string) (*domain.RegisterEntry, error)
	ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error)
	ListByDateRange(ctx context.Context, r domain.DateRange) ([]*domain.RegisterEntry, error)
}

// RegisterHandler handles the ledger store endpoints.
type RegisterHandler struct {
	registerUC RegisterService
	loc        *time.Location
}

// NewRegisterHandler creates a new RegisterHandler. Day-only date bounds
// are read in loc.
func NewRegisterHandler(registerUC RegisterService, loc *time.Location) *RegisterHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &RegisterHandler{registerUC: registerUC, loc: loc}
}

// Create records a new entry.
func (h *RegisterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.registerUC.CreateRegister(r.Context(), req.ToCreateInput())
	if err != nil {
		writeDomainError(w, r, "failed to create register", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterFromDomain(entry))
}

// Update overwrites an entry identified by the body's id.
func (h *RegisterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:  "failed to update register",
			Fields: []dto.FieldErrorResponse{{Field: "id", Message: "id is required"}},
		})
		return
	}

	entry, err := h.registerUC.UpdateRegister(r.Context(), req.ToUpdateInput())
	if err != nil {
		writeDomainError(w, r, "failed to update register", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterFromDomain(entry))
}

// Get returns a single entry.
func (h *RegisterHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.registerUC.GetRegister(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get register", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterFromDomain(entry))
}

// Delete removes an entry.
func (h *RegisterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	if err := h.registerUC.DeleteRegister(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete register", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ListByDescription lists entries whose description contains the path
// substring. GET /register/ lists everything.
func (h *RegisterHandler) ListByDescription(w http.ResponseWriter, r *http.Request) {
	entries, err := h.registerUC.ListByDescription(r.Context(), pathParam(r, "substring"))
	if err != nil {
		writeDomainError(w, r, "failed to list registers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RegistersFromDomain(entries))
}

// ListByDateRange lists entries between the start and end path bounds.
func (h *RegisterHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	dr, err := domain.ParseDateRange(pathParam(r, "start"), pathParam(r, "end"), h.loc)
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	entries, err := h.registerUC.ListByDateRange(r.Context(), dr)
	if err != nil {
		writeDomainError(w, r, "failed to list registers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RegistersFromDomain(entries))
}
