// Package exchangerate fetches the BRL-per-USD rate from the open.er-api.com
// latest-rates endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/barberledger/internal/domain"
)

// DefaultURL returns rates quoted against one USD.
const DefaultURL = "https://open.er-api.com/v6/latest/USD"

// Fetch outcomes reported to the Observer.
const (
	StatusReady       = "ready"
	StatusUnavailable = "unavailable"
)

// Observer receives one call per FetchRate.
type Observer interface {
	FXFetch(status string, d time.Duration)
}

// Client implements usecase.RateProvider.
type Client struct {
	url             string
	httpClient      *http.Client
	timeout         time.Duration
	maxRetries      int
	initialInterval time.Duration
	observer        Observer
	now             func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds a whole FetchRate call, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithInitialInterval sets the first backoff delay.
func WithInitialInterval(d time.Duration) Option {
	return func(c *Client) { c.initialInterval = d }
}

// WithObserver reports fetch outcomes, typically to metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a rate client for url. An empty url uses DefaultURL.
func NewClient(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}

	c := &Client{
		url:             url,
		httpClient:      &http.Client{},
		timeout:         5 * time.Second,
		maxRetries:      2,
		initialInterval: 200 * time.Millisecond,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type latestResponse struct {
	Result string                     `json:"result"`
	Base   string                     `json:"base_code"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// statusError is a non-2xx answer from the rate service.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("rate service returned status %d: %s", e.code, e.body)
}

// FetchRate returns the current BRL-per-USD rate. Every failure, including
// a payload without a usable BRL rate, is reported as
// domain.ErrRateUnavailable; the rate is never defaulted.
func (c *Client) FetchRate(ctx context.Context) (domain.ExchangeRate, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	exp.MaxElapsedTime = 0
	b := backoff.WithMaxRetries(backoff.WithContext(exp, ctx), uint64(c.maxRetries))

	logger := zerolog.Ctx(ctx)

	rate, err := backoff.RetryNotifyWithData(func() (domain.ExchangeRate, error) {
		return c.fetchOnce(ctx)
	}, b, func(err error, wait time.Duration) {
		logger.Debug().Err(err).Dur("wait", wait).Msg("exchange rate fetch failed, retrying")
	})

	if err != nil {
		c.observe(StatusUnavailable, time.Since(start))
		if errors.Is(err, domain.ErrRateUnavailable) {
			return domain.ExchangeRate{}, err
		}
		return domain.ExchangeRate{}, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}

	c.observe(StatusReady, time.Since(start))
	return rate, nil
}

func (c *Client) fetchOnce(ctx context.Context) (domain.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.ExchangeRate{}, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		serr := &statusError{code: resp.StatusCode, body: string(body)}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return domain.ExchangeRate{}, serr
		}
		return domain.ExchangeRate{}, backoff.Permanent(serr)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.ExchangeRate{}, backoff.Permanent(fmt.Errorf("%w: decode response: %v", domain.ErrRateUnavailable, err))
	}

	if payload.Result != "" && payload.Result != "success" {
		return domain.ExchangeRate{}, backoff.Permanent(fmt.Errorf("%w: result %q", domain.ErrRateUnavailable, payload.Result))
	}

	brl, ok := payload.Rates[domain.CurrencyBRL]
	if !ok {
		return domain.ExchangeRate{}, backoff.Permanent(fmt.Errorf("%w: no %s rate in payload", domain.ErrRateUnavailable, domain.CurrencyBRL))
	}

	rate, err := domain.NewExchangeRate(brl, c.now())
	if err != nil {
		return domain.ExchangeRate{}, backoff.Permanent(err)
	}

	return rate, nil
}

func (c *Client) observe(status string, d time.Duration) {
	if c.observer != nil {
		c.observer.FXFetch(status, d)
	}
}
