package dto

import (
	"time"

	"github.com/iho/barberledger/internal/usecase"
)

// RegisterReportResponse is the ledger report over a date range.
type RegisterReportResponse struct {
	Start         time.Time           `json:"start"`
	End           time.Time           `json:"end"`
	Entries       []*RegisterResponse `json:"entries"`
	IncomingTotal Number              `json:"incomingTotal"`
	OutgoingTotal Number              `json:"outgoingTotal"`
	NetTotal      Number              `json:"netTotal"`
}

// RegisterReportFromUseCase converts a use case report.
func RegisterReportFromUseCase(r *usecase.RegisterReport) *RegisterReportResponse {
	return &RegisterReportResponse{
		Start:         r.Range.Start,
		End:           r.Range.End,
		Entries:       RegistersFromDomain(r.Entries),
		IncomingTotal: NewNumber(r.Totals.Incoming),
		OutgoingTotal: NewNumber(r.Totals.Outgoing),
		NetTotal:      NewNumber(r.Totals.Net()),
	}
}

// ServiceReportResponse is the revenue report. Rate and ConvertedTotal are
// null unless RateStatus is "ready".
type ServiceReportResponse struct {
	Start          time.Time          `json:"start"`
	End            time.Time          `json:"end"`
	CustomerName   string             `json:"customerName"`
	Services       []*ServiceResponse `json:"services"`
	Total          Number             `json:"total"`
	Rate           *Number            `json:"rate"`
	ConvertedTotal *Number            `json:"convertedTotal"`
	RateStatus     string             `json:"rateStatus"`
}

// ServiceReportFromUseCase converts a use case report.
func ServiceReportFromUseCase(r *usecase.RevenueReport) *ServiceReportResponse {
	resp := &ServiceReportResponse{
		Start:          r.Filter.Range.Start,
		End:            r.Filter.Range.End,
		CustomerName:   r.Filter.CustomerName,
		Services:       ServicesFromDomain(r.Services),
		Total:          NewNumber(r.Total),
		ConvertedTotal: numberPtr(r.ConvertedTotal),
		RateStatus:     r.RateStatus,
	}
	if r.Rate != nil {
		resp.Rate = numberPtr(&r.Rate.BRLPerUSD)
	}
	return resp
}
