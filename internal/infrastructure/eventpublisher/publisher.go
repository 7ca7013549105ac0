package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/barberledger/internal/domain"
)

// ErrQueueFull is returned by Dispatcher.Publish when the buffer is full.
var ErrQueueFull = errors.New("event queue full")

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// Recorder counts publish outcomes.
type Recorder interface {
	EventPublished(eventType, status string)
}

// Dispatcher hands register events to a Publisher from a background
// worker so that request handlers never wait on the broker.
type Dispatcher struct {
	publisher Publisher
	recorder  Recorder
	logger    zerolog.Logger
	queue     chan *domain.Event
	timeout   time.Duration
}

// Config for Dispatcher.
type Config struct {
	Publisher  Publisher
	Recorder   Recorder // optional
	Logger     zerolog.Logger
	BufferSize int           // Number of events held while the worker is busy
	Timeout    time.Duration // Per-event publish timeout
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 256
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &Dispatcher{
		publisher: cfg.Publisher,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		queue:     make(chan *domain.Event, cfg.BufferSize),
		timeout:   cfg.Timeout,
	}
}

// Publish enqueues event. It never blocks.
func (d *Dispatcher) Publish(_ context.Context, event *domain.Event) error {
	select {
	case d.queue <- event:
		return nil
	default:
		d.record(event.EventType, statusDropped)
		return ErrQueueFull
	}
}

// Start runs the publishing worker until ctx is cancelled, then delivers
// whatever is still queued.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info().
		Int("buffer_size", cap(d.queue)).
		Dur("timeout", d.timeout).
		Msg("event dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.drain()
			d.logger.Info().Msg("event dispatcher shutting down")
			return ctx.Err()
		case event := <-d.queue:
			d.deliver(event)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.deliver(event)
		default:
			return
		}
	}
}

// deliver publishes a single event with its own deadline, detached from the
// request that produced it.
func (d *Dispatcher) deliver(event *domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.Publish(d.logger.WithContext(ctx), event); err != nil {
		d.record(event.EventType, statusFailure)
		d.logger.Error().
			Err(err).
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Str("aggregate_id", event.AggregateID).
			Msg("failed to publish event")
		return
	}

	d.record(event.EventType, statusSuccess)
}

func (d *Dispatcher) record(eventType, status string) {
	if d.recorder != nil {
		d.recorder.EventPublished(eventType, status)
	}
}

const (
	statusSuccess = "success"
	statusFailure = "failure"
	statusDropped = "dropped"
)

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}
