package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/barberledger/internal/domain"
)

// FakeRegisterRepository is an in-memory RegisterRepository. Setting a Func
// field overrides the stored behavior for that method.
type FakeRegisterRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.RegisterEntry

	CreateFunc            func(ctx context.Context, entry *domain.RegisterEntry) error
	UpdateFunc            func(ctx context.Context, entry *domain.RegisterEntry) error
	DeleteFunc            func(ctx context.Context, id string) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.RegisterEntry, error)
	ListByDescriptionFunc func(ctx context.Context, substr string) ([]*domain.RegisterEntry, error)
	ListByDateRangeFunc   func(ctx context.Context, start, end time.Time) ([]*domain.RegisterEntry, error)
}

func NewFakeRegisterRepository(entries ...*domain.RegisterEntry) *FakeRegisterRepository {
	m := &FakeRegisterRepository{
		entries: make(map[string]*domain.RegisterEntry),
	}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return m
}

func (m *FakeRegisterRepository) Create(ctx context.Context, entry *domain.RegisterEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *FakeRegisterRepository) Update(ctx context.Context, entry *domain.RegisterEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrRegisterNotFound
	}
	cp := *entry
	m.entries[entry.ID] = &cp
	return nil
}

func (m *FakeRegisterRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrRegisterNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *FakeRegisterRepository) GetByID(ctx context.Context, id string) (*domain.RegisterEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrRegisterNotFound
}

func (m *FakeRegisterRepository) ListByDescription(ctx context.Context, substr string) ([]*domain.RegisterEntry, error) {
	if m.ListByDescriptionFunc != nil {
		return m.ListByDescriptionFunc(ctx, substr)
	}
	return m.filter(func(e *domain.RegisterEntry) bool {
		return e.MatchesDescription(substr)
	}), nil
}

func (m *FakeRegisterRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.RegisterEntry, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, start, end)
	}
	r := domain.DateRange{Start: start, End: end}
	return m.filter(func(e *domain.RegisterEntry) bool {
		return r.Contains(e.Date)
	}), nil
}

// Len returns the number of stored entries.
func (m *FakeRegisterRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *FakeRegisterRepository) filter(keep func(*domain.RegisterEntry) bool) []*domain.RegisterEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.RegisterEntry
	for _, e := range m.entries {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// FakeServiceRepository serves a fixed set of services.
type FakeServiceRepository struct {
	Services []*domain.ServiceRecord

	ListFunc func(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error)
}

func (m *FakeServiceRepository) List(ctx context.Context, filter domain.ServiceFilter) ([]*domain.ServiceRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	var out []*domain.ServiceRecord
	for _, s := range m.Services {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// SequenceIDGenerator returns "<prefix>-1", "<prefix>-2", ...
type SequenceIDGenerator struct {
	mu      sync.Mutex
	counter int
	Prefix  string
}

func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{Prefix: prefix}
}

func (m *SequenceIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s-%d", m.Prefix, m.counter)
}

// FakePublisher collects published events.
type FakePublisher struct {
	mu     sync.Mutex
	events []*domain.Event

	Err error
}

func (m *FakePublisher) Publish(_ context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *FakePublisher) Events() []*domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Event, len(m.events))
	copy(out, m.events)
	return out
}

// FakeIdempotencyStore is an in-memory IdempotencyStore without expiry.
type FakeIdempotencyStore struct {
	mu    sync.Mutex
	store map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		store: make(map[string][]byte),
	}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.store[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte("processing")
	}
	m.store[key] = response
	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = response
	return nil
}

func (m *FakeIdempotencyStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

// Get returns the stored value for key.
func (m *FakeIdempotencyStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[key]
	return v, ok
}
