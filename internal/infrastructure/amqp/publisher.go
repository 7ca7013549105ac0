package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iho/barberledger/internal/domain"
)

const (
	exchangeKind   = "topic"
	publishTimeout = 5 * time.Second
	contentType    = "application/json"
)

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends register events to a durable topic exchange, routed by
// event type (register.created, register.updated, register.deleted).
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  channel
	exchange string
	now      func() time.Time
}

// NewPublisher dials url, opens a channel and declares exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newPublisher(ch channel, exchange string) (*Publisher, error) {
	p := &Publisher{
		channel:  ch,
		exchange: exchange,
		now:      time.Now,
	}

	if err := p.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("setup exchange: %w", err)
	}

	return p, nil
}

func (p *Publisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchange,   // name
		exchangeKind, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	return nil
}

// Publish sends event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event *domain.Event) error {
	body, err := NewRegisterEventMessage(event).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,      // exchange
		event.EventType, // routing key
		false,           // mandatory
		false,           // immediate
		amqp091.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.ID,
			Type:         event.EventType,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("exchange", p.exchange).
		Msg("published register event")

	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
