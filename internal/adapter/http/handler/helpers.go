package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status and writes it, with field details
// for validation failures. Server errors are logged.
func writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(message)
	}

	resp := dto.ErrorResponse{
		Error:   message,
		Message: err.Error(),
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = dto.FieldsFromValidation(verr.Fields)
	}

	writeJSON(w, status, resp)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRegisterNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDescription):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeValue):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrValueTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrValuePrecision):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathParam returns a decoded URL parameter. chi matches on the raw path
// when the request carried escaped separators, leaving the value escaped.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// queryRange reads start and end query parameters. A missing bound falls
// back to the matching bound of def.
func queryRange(r *http.Request, loc *time.Location, def domain.DateRange) (domain.DateRange, error) {
	q := r.URL.Query()

	result := def
	if v := q.Get("start"); v != "" {
		start, err := domain.ParseBound(v, loc, false)
		if err != nil {
			return domain.DateRange{}, err
		}
		result.Start = start
	}
	if v := q.Get("end"); v != "" {
		end, err := domain.ParseBound(v, loc, true)
		if err != nil {
			return domain.DateRange{}, err
		}
		result.End = end
	}
	return result, nil
}
