package report

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/barberledger/internal/domain"
)

// Rate states shown next to a converted total.
const (
	RatePending     = "pending"
	RateReady       = "ready"
	RateUnavailable = "unavailable"
)

// RateSource fetches the BRL-per-USD rate.
type RateSource interface {
	FetchRate(ctx context.Context) (domain.ExchangeRate, error)
}

// RateFuture is a single rate fetch started once per session.
type RateFuture struct {
	done   chan struct{}
	cancel context.CancelFunc

	once sync.Once
	rate domain.ExchangeRate
	err  error
}

// StartRate begins fetching the rate from src in the background.
func StartRate(ctx context.Context, src RateSource) *RateFuture {
	ctx, cancel := context.WithCancel(ctx)
	f := &RateFuture{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		rate, err := src.FetchRate(ctx)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("exchange rate unavailable")
		}
		f.resolve(rate, err)
	}()

	return f
}

func (f *RateFuture) resolve(rate domain.ExchangeRate, err error) {
	f.once.Do(func() {
		f.rate, f.err = rate, err
		close(f.done)
	})
}

// Status reports pending, ready or unavailable without blocking.
func (f *RateFuture) Status() string {
	select {
	case <-f.done:
		if f.err != nil {
			return RateUnavailable
		}
		return RateReady
	default:
		return RatePending
	}
}

// Rate returns the fetched rate. ok is false while pending or when the
// rate is unavailable.
func (f *RateFuture) Rate() (rate domain.ExchangeRate, ok bool) {
	select {
	case <-f.done:
		return f.rate, f.err == nil
	default:
		return domain.ExchangeRate{}, false
	}
}

// Wait blocks until the fetch resolves or ctx is done.
func (f *RateFuture) Wait(ctx context.Context) (domain.ExchangeRate, error) {
	select {
	case <-f.done:
		return f.rate, f.err
	case <-ctx.Done():
		return domain.ExchangeRate{}, ctx.Err()
	}
}

// Cancel abandons the fetch. A pending future resolves as unavailable.
func (f *RateFuture) Cancel() {
	f.cancel()
}
