package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/barberledger/internal/domain"
)

// LedgerStore lists register entries.
type LedgerStore interface {
	ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error)
	ListByDateRange(ctx context.Context, r domain.DateRange) ([]*domain.RegisterEntry, error)
}

// ServiceStore lists rendered services.
type ServiceStore interface {
	ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error)
}

// LedgerQuery selects entries by description substring or, when ByRange is
// set, by date range.
type LedgerQuery struct {
	Range       domain.DateRange
	Description string
	ByRange     bool
}

// LedgerSnapshot is the ledger state with totals of the displayed list.
type LedgerSnapshot struct {
	State[LedgerQuery, []*domain.RegisterEntry]
	Totals domain.Totals
}

// LedgerSession is the ledger screen: one sequenced view over the store.
type LedgerSession struct {
	view *View[LedgerQuery, []*domain.RegisterEntry]
}

// NewLedgerSession creates a ledger session reading from store.
func NewLedgerSession(ctx context.Context, store LedgerStore, opts ...ViewOption) *LedgerSession {
	fetch := func(ctx context.Context, q LedgerQuery) ([]*domain.RegisterEntry, error) {
		if q.ByRange {
			return store.ListByDateRange(ctx, q.Range)
		}
		return store.ListByDescription(ctx, q.Description)
	}

	opts = append([]ViewOption{WithName("ledger")}, opts...)
	return &LedgerSession{view: NewView[LedgerQuery, []*domain.RegisterEntry](ctx, fetch, opts...)}
}

// Search lists entries whose description contains substr.
func (s *LedgerSession) Search(substr string) uint64 {
	return s.view.Apply(LedgerQuery{Description: substr})
}

// SelectRange lists entries inside r.
func (s *LedgerSession) SelectRange(r domain.DateRange) uint64 {
	return s.view.Apply(LedgerQuery{Range: r, ByRange: true})
}

// Wait blocks until the latest query has settled.
func (s *LedgerSession) Wait() {
	s.view.Wait()
}

// Dismiss clears the displayed error.
func (s *LedgerSession) Dismiss() {
	s.view.Dismiss()
}

// Snapshot returns the state with totals recomputed from its data.
func (s *LedgerSession) Snapshot() LedgerSnapshot {
	st := s.view.Snapshot()
	return LedgerSnapshot{
		State:  st,
		Totals: domain.Aggregate(st.Data),
	}
}

// Close cancels the in-flight query.
func (s *LedgerSession) Close() {
	s.view.Close()
}

// RevenueSnapshot is the revenue state. Total sums the displayed list once
// any query has resolved; ConvertedTotal is set only when the latest query
// is ready and the rate is ready too.
type RevenueSnapshot struct {
	State[domain.ServiceFilter, []*domain.ServiceRecord]
	Total          *decimal.Decimal
	Rate           *domain.ExchangeRate
	ConvertedTotal *decimal.Decimal
	RateStatus     string
}

// RevenueSession is the revenue screen: a view over the service query and
// a rate fetch started with the session.
type RevenueSession struct {
	view *View[domain.ServiceFilter, []*domain.ServiceRecord]
	rate *RateFuture
}

// NewRevenueSession starts the rate fetch and returns an idle session.
func NewRevenueSession(ctx context.Context, services ServiceStore, rates RateSource, opts ...ViewOption) *RevenueSession {
	opts = append([]ViewOption{WithName("revenue")}, opts...)
	return &RevenueSession{
		view: NewView[domain.ServiceFilter, []*domain.ServiceRecord](ctx, services.ListServices, opts...),
		rate: StartRate(ctx, rates),
	}
}

// Filter queries services by customer name substring and date range.
func (s *RevenueSession) Filter(filter domain.ServiceFilter) uint64 {
	return s.view.Apply(filter)
}

// Wait blocks until the latest query has settled and the rate has resolved,
// or ctx is done.
func (s *RevenueSession) Wait(ctx context.Context) {
	s.view.Wait()
	_, _ = s.rate.Wait(ctx)
}

// Dismiss clears the displayed error.
func (s *RevenueSession) Dismiss() {
	s.view.Dismiss()
}

// Snapshot joins the service state with the rate state.
func (s *RevenueSession) Snapshot() RevenueSnapshot {
	snap := RevenueSnapshot{
		State:      s.view.Snapshot(),
		RateStatus: s.rate.Status(),
	}

	if !snap.Loaded() {
		return snap
	}

	total := domain.SumServices(snap.Data)
	snap.Total = &total

	if snap.Status != StatusReady {
		return snap
	}

	rate, ok := s.rate.Rate()
	if !ok {
		return snap
	}

	converted, err := domain.Convert(total, rate)
	if err != nil {
		return snap
	}
	snap.Rate = &rate
	snap.ConvertedTotal = &converted

	return snap
}

// Close cancels the service query and the rate fetch.
func (s *RevenueSession) Close() {
	s.view.Close()
	s.rate.Cancel()
}
