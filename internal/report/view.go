package report

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Fetcher runs one query against a store. It must honour ctx cancellation.
type Fetcher[Q, T any] func(ctx context.Context, q Q) (T, error)

type viewConfig struct {
	name     string
	debounce time.Duration
}

// ViewOption configures a View.
type ViewOption func(*viewConfig)

// WithDebounce delays each query by d. A query replaced within d is never
// sent, so typing a filter issues one request for the settled input.
func WithDebounce(d time.Duration) ViewOption {
	return func(c *viewConfig) { c.debounce = d }
}

// WithName sets the view name used in log lines.
func WithName(name string) ViewOption {
	return func(c *viewConfig) { c.name = name }
}

// View keeps the state of one filter dimension. Every Apply takes a new
// sequence token and cancels the request it replaces; responses carrying
// an older token never reach the state.
type View[Q, T any] struct {
	ctx   context.Context
	fetch Fetcher[Q, T]
	cfg   viewConfig

	mu       sync.Mutex
	state    State[Q, T]
	seq      uint64
	cancel   context.CancelFunc
	closed   bool
	inflight sync.WaitGroup
}

// NewView creates a view whose fetches run under ctx.
func NewView[Q, T any](ctx context.Context, fetch Fetcher[Q, T], opts ...ViewOption) *View[Q, T] {
	cfg := viewConfig{name: "view"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &View[Q, T]{
		ctx:   ctx,
		fetch: fetch,
		cfg:   cfg,
	}
}

// Apply issues q and returns its sequence token. It returns 0 once the
// view is closed.
func (v *View[Q, T]) Apply(q Q) uint64 {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return 0
	}

	if v.cancel != nil {
		v.cancel()
	}

	v.seq++
	seq := v.seq
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	v.dispatchLocked(issued[Q, T](seq, q))
	v.inflight.Add(1)
	v.mu.Unlock()

	go v.run(ctx, seq, q)

	return seq
}

func (v *View[Q, T]) run(ctx context.Context, seq uint64, q Q) {
	defer v.inflight.Done()

	if v.cfg.debounce > 0 {
		timer := time.NewTimer(v.cfg.debounce)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			zerolog.Ctx(v.ctx).Debug().
				Str("view", v.cfg.name).
				Uint64("seq", seq).
				Msg("query replaced before it was sent")
			return
		case <-timer.C:
		}
	}

	data, err := v.fetch(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	if err != nil {
		v.dispatchLocked(failed[Q, T](seq, err))
		return
	}
	v.dispatchLocked(resolved[Q, T](seq, data))
}

func (v *View[Q, T]) dispatchLocked(ev event[Q, T]) {
	next, applied := reduce(v.state, ev)
	if !applied {
		if ev.kind == eventResolved || ev.kind == eventFailed {
			zerolog.Ctx(v.ctx).Debug().
				Str("view", v.cfg.name).
				Uint64("seq", ev.seq).
				Uint64("current_seq", v.state.Seq).
				Msg("discarded stale response")
		}
		return
	}
	v.state = next
}

// Wait blocks until no fetch is in flight.
func (v *View[Q, T]) Wait() {
	v.inflight.Wait()
}

// Dismiss clears a displayed error. The last-known-good data stays.
func (v *View[Q, T]) Dismiss() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dispatchLocked(dismissed[Q, T]())
}

// Snapshot returns the current state.
func (v *View[Q, T]) Snapshot() State[Q, T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Close cancels the in-flight fetch. Later calls to Apply are ignored.
func (v *View[Q, T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
}
