package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/barberledger/internal/domain"
)

// Rate states of a revenue report.
const (
	RateStatusReady       = "ready"
	RateStatusUnavailable = "unavailable"
)

// ReportUseCase builds the ledger and revenue reports.
type ReportUseCase struct {
	registers *RegisterUseCase
	services  *ServiceUseCase
	rates     RateProvider
	recorder  Recorder
}

// NewReportUseCase creates a new ReportUseCase. recorder may be nil.
func NewReportUseCase(registers *RegisterUseCase, services *ServiceUseCase, rates RateProvider, recorder Recorder) *ReportUseCase {
	return &ReportUseCase{
		registers: registers,
		services:  services,
		rates:     rates,
		recorder:  recorder,
	}
}

// RegisterReport is the ledger over a date range with its totals.
type RegisterReport struct {
	Entries []*domain.RegisterEntry
	Range   domain.DateRange
	Totals  domain.Totals
}

// RevenueReport is the service revenue for a filter, with the USD figure
// when a rate could be fetched.
type RevenueReport struct {
	Rate           *domain.ExchangeRate
	ConvertedTotal *decimal.Decimal
	Filter         domain.ServiceFilter
	Total          decimal.Decimal
	RateStatus     string
	Services       []*domain.ServiceRecord
}

// RegisterReport lists the entries in r and aggregates them.
func (uc *ReportUseCase) RegisterReport(ctx context.Context, r domain.DateRange) (*RegisterReport, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	entries, err := uc.registers.ListByDateRange(ctx, r)
	if err != nil {
		return nil, err
	}

	uc.reportGenerated(ReportKindRegister)

	return &RegisterReport{
		Range:   r,
		Entries: entries,
		Totals:  domain.Aggregate(entries),
	}, nil
}

// RevenueReport runs the service query and the rate fetch concurrently and
// joins them. A missing rate leaves ConvertedTotal nil; only a failed
// service query fails the report.
func (uc *ReportUseCase) RevenueReport(ctx context.Context, filter domain.ServiceFilter) (*RevenueReport, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var (
		services []*domain.ServiceRecord
		rate     domain.ExchangeRate
		rateErr  error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		services, err = uc.services.ListServices(gctx, filter)
		return err
	})

	g.Go(func() error {
		rate, rateErr = uc.rates.FetchRate(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &RevenueReport{
		Filter:     filter,
		Services:   services,
		Total:      domain.SumServices(services),
		RateStatus: RateStatusUnavailable,
	}

	if rateErr != nil {
		zerolog.Ctx(ctx).Warn().Err(rateErr).Msg("revenue report without exchange rate")
	} else if converted, err := domain.Convert(report.Total, rate); err == nil {
		report.Rate = &rate
		report.ConvertedTotal = &converted
		report.RateStatus = RateStatusReady
	}

	uc.reportGenerated(ReportKindRevenue)

	return report, nil
}

func (uc *ReportUseCase) reportGenerated(kind string) {
	if uc.recorder != nil {
		uc.recorder.ReportGenerated(kind)
	}
}
