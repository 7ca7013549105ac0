package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/barberledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	// pendingMarker is what the store holds while the first request runs.
	pendingMarker = "processing"
)

// IdempotencyMiddleware handles request idempotency using Redis.
type IdempotencyMiddleware struct {
	store    usecase.IdempotencyStore
	ttl      time.Duration
	replayed prometheus.Counter
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A zero ttl
// uses usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// WithReplayCounter counts replayed responses on c.
func (m *IdempotencyMiddleware) WithReplayCounter(c prometheus.Counter) *IdempotencyMiddleware {
	m.replayed = c
	return m
}

type storedResponse struct {
	Body   []byte `json:"body"`
	Status int    `json:"status"`
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := zerolog.Ctx(ctx)
		key := r.Method + " " + r.URL.Path + " " + header

		exists, cached, err := m.store.CheckAndSet(ctx, key, nil, m.ttl)
		if err != nil {
			logger.Error().Err(err).Str("idempotency_key", header).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}

		if exists {
			if len(cached) == 0 || string(cached) == pendingMarker {
				writeJSONError(w, http.StatusConflict, "request with this idempotency key is in progress")
				return
			}
			m.replay(w, cached)
			return
		}

		// A panicking handler must not leave the key claimed for the whole TTL.
		defer func() {
			if p := recover(); p != nil {
				if err := m.store.Release(context.WithoutCancel(ctx), key); err != nil {
					logger.Warn().Err(err).Str("idempotency_key", header).Msg("failed to release idempotency key")
				}
				panic(p)
			}
		}()

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode > 299 {
			if err := m.store.Release(ctx, key); err != nil {
				logger.Warn().Err(err).Str("idempotency_key", header).Msg("failed to release idempotency key")
			}
			return
		}

		data, err := json.Marshal(storedResponse{Status: recorder.statusCode, Body: recorder.body.Bytes()})
		if err == nil {
			err = m.store.Update(ctx, key, data, m.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Str("idempotency_key", header).Msg("failed to store idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, cached []byte) {
	if m.replayed != nil {
		m.replayed.Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotencyReplayHeader, "true")

	var stored storedResponse
	if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
		w.Write(cached)
		return
	}

	w.WriteHeader(stored.Status)
	w.Write(stored.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
