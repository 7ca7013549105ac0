// Package client talks to the ledger REST surface. Input is validated before
// any request is sent; responses map to domain.ErrRegisterNotFound,
// *domain.ValidationError or *NetworkError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iho/barberledger/internal/adapter/http/dto"
	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/usecase"
)

// Client is a ledger REST client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateRegister records a new entry.
func (c *Client) CreateRegister(ctx context.Context, in usecase.CreateRegisterInput) (*domain.RegisterEntry, error) {
	if err := domain.ValidateRegister(in.Description, in.Value).Err(); err != nil {
		return nil, err
	}

	body := dto.RegisterRequest{
		IsIncoming:  in.IsIncoming,
		Description: in.Description,
		Value:       dto.NewNumber(in.Value),
		Date:        in.Date,
	}

	var resp dto.RegisterResponse
	if err := c.do(ctx, "create register", http.MethodPost, "/register", body, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// UpdateRegister overwrites an entry.
func (c *Client) UpdateRegister(ctx context.Context, in usecase.UpdateRegisterInput) (*domain.RegisterEntry, error) {
	if err := domain.ValidateRegister(in.Description, in.Value).Err(); err != nil {
		return nil, err
	}

	body := dto.RegisterRequest{
		ID:          in.ID,
		IsIncoming:  in.IsIncoming,
		Description: in.Description,
		Value:       dto.NewNumber(in.Value),
		Date:        in.Date,
	}

	var resp dto.RegisterResponse
	if err := c.do(ctx, opUpdate, http.MethodPut, "/register", body, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// GetRegister loads a single entry.
func (c *Client) GetRegister(ctx context.Context, id string) (*domain.RegisterEntry, error) {
	var resp dto.RegisterResponse
	if err := c.do(ctx, opGet, http.MethodGet, "/register/id/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// DeleteRegister removes an entry.
func (c *Client) DeleteRegister(ctx context.Context, id string) error {
	return c.do(ctx, opDelete, http.MethodDelete, "/register/delete/"+url.PathEscape(id), nil, nil)
}

// ListByDescription lists entries whose description contains substr.
// An empty substr lists all entries.
func (c *Client) ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error) {
	var resp []*dto.RegisterResponse
	if err := c.do(ctx, "list registers", http.MethodGet, "/register/"+url.PathEscape(substr), nil, &resp); err != nil {
		return nil, err
	}
	return dto.RegistersToDomain(resp), nil
}

// ListByDateRange lists entries inside r, bounds included. Bounds are sent
// as exact instants.
func (c *Client) ListByDateRange(ctx context.Context, r domain.DateRange) ([]*domain.RegisterEntry, error) {
	if r.IsEmpty() {
		return []*domain.RegisterEntry{}, nil
	}

	path := fmt.Sprintf("/register/%s/%s",
		url.PathEscape(r.Start.Format(time.RFC3339Nano)),
		url.PathEscape(r.End.Format(time.RFC3339Nano)),
	)

	var resp []*dto.RegisterResponse
	if err := c.do(ctx, "list registers by date", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return dto.RegistersToDomain(resp), nil
}

// ListServices lists services matching both the customer name substring and
// the date range.
func (c *Client) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error) {
	if filter.Range.IsEmpty() {
		return []*domain.ServiceRecord{}, nil
	}

	q := url.Values{}
	q.Set("customerName", filter.CustomerName)
	q.Set("start", filter.Range.Start.Format(time.RFC3339Nano))
	q.Set("end", filter.Range.End.Format(time.RFC3339Nano))

	var resp []*dto.ServiceResponse
	if err := c.do(ctx, "list services", http.MethodGet, "/service?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return dto.ServicesToDomain(resp), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

var errBadStatus = errors.New("unexpected status")

const (
	opGet    = "get register"
	opUpdate = "update register"
	opDelete = "delete register"
)

func decodeError(op string, resp *http.Response) error {
	var payload dto.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &payload); err != nil {
		payload.Message = strings.TrimSpace(string(data))
	}

	message := payload.Message
	if message == "" {
		message = payload.Error
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && (op == opGet || op == opUpdate || op == opDelete):
		return fmt.Errorf("%w: %s", domain.ErrRegisterNotFound, message)
	case resp.StatusCode == http.StatusBadRequest && len(payload.Fields) > 0:
		fields := make([]domain.FieldError, len(payload.Fields))
		for i, f := range payload.Fields {
			fields[i] = domain.FieldError{Field: f.Field, Message: f.Message, Err: errors.New(f.Message)}
		}
		return &domain.ValidationError{Fields: fields}
	}

	return &NetworkError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    message,
		Err:        errBadStatus,
	}
}
