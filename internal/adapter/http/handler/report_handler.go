package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	RegisterReport(ctx context.Context, r domain.DateRange) (*usecase.RegisterReport, error)
	RevenueReport(ctx context.Context, filter domain.ServiceFilter) (*usecase.RevenueReport, error)
}

// ReportHandler serves the aggregated ledger and revenue reports.
type ReportHandler struct {
	reportUC ReportService
	loc      *time.Location
	now      func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{reportUC: reportUC, loc: loc, now: time.Now}
}

// Register handles GET /report/register/{start}/{end}.
func (h *ReportHandler) Register(w http.ResponseWriter, r *http.Request) {
	dr, err := domain.ParseDateRange(pathParam(r, "start"), pathParam(r, "end"), h.loc)
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	report, err := h.reportUC.RegisterReport(r.Context(), dr)
	if err != nil {
		writeDomainError(w, r, "failed to build register report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterReportFromUseCase(report))
}

// Service handles GET /report/service?customerName=&start=&end=.
func (h *ReportHandler) Service(w http.ResponseWriter, r *http.Request) {
	filter, err := serviceFilter(r, h.loc, h.now())
	if err != nil {
		writeDomainError(w, r, "invalid date range", err)
		return
	}

	report, err := h.reportUC.RevenueReport(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, "failed to build service report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ServiceReportFromUseCase(report))
}
