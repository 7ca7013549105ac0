package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
)

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"register not found", domain.ErrRegisterNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("update: %w", domain.ErrRegisterNotFound), http.StatusNotFound},
		{"validation", domain.ValidateRegister("", decimalOne()).Err(), http.StatusBadRequest},
		{"negative value", domain.ErrNegativeValue, http.StatusBadRequest},
		{"invalid date range", domain.ErrInvalidDateRange, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteDomainError_IncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", nil)

	writeDomainError(rec, req, "failed to create register", domain.ValidateRegister(" ", decimalOne()).Err())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Field != domain.FieldDescription {
		t.Fatalf("expected description field error, got %+v", resp.Fields)
	}
}

func TestPathParam_UnescapesRawPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/register/a%2Fb", nil)
	req = withURLParams(req, map[string]string{"substring": "a%2Fb"})

	if got := pathParam(req, "substring"); got != "a/b" {
		t.Fatalf("expected a/b, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/register/100%25", nil)
	req = withURLParams(req, map[string]string{"substring": "100%"})

	if got := pathParam(req, "substring"); got != "100%" {
		t.Fatalf("expected 100%%, got %q", got)
	}
}

func TestQueryRange(t *testing.T) {
	def := domain.DayRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/service?start=2024-01-03", nil)
	got, err := queryRange(req, time.UTC, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", got.Start)
	}
	if !got.End.Equal(def.End) {
		t.Fatalf("expected default end, got %s", got.End)
	}

	req = httptest.NewRequest(http.MethodGet, "/service?end=not-a-date", nil)
	if _, err := queryRange(req, time.UTC, def); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}
