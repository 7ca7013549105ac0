package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDateRange(t *testing.T) {
	t.Parallel()

	r, err := ParseDateRange("2024-01-01", "2024-01-31", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", r.Start)
	}
	if !r.End.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)) {
		t.Fatalf("expected end to cover the whole last day, got %s", r.End)
	}

	if _, err := ParseDateRange("2024-13-01", "2024-01-31", time.UTC); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	if _, err := ParseDateRange("", "2024-01-31", time.UTC); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for empty bound, got %v", err)
	}
}

func TestParseDateRangeRFC3339(t *testing.T) {
	t.Parallel()

	r, err := ParseDateRange("2024-01-01T10:00:00Z", "2024-01-01T12:00:00Z", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.End.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected exact end bound, got %s", r.End)
	}
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	r := NewDateRange(start, end)

	cases := map[string]struct {
		at   time.Time
		want bool
	}{
		"exactly start": {start, true},
		"exactly end":   {end, true},
		"inside":        {start.Add(48 * time.Hour), true},
		"before start":  {start.Add(-time.Nanosecond), false},
		"after end":     {end.Add(time.Nanosecond), false},
	}

	for name, c := range cases {
		if got := r.Contains(c.at); got != c.want {
			t.Fatalf("%s: Contains(%s) = %v, want %v", name, c.at, got, c.want)
		}
	}

	if r.IsEmpty() {
		t.Fatalf("expected non-empty range")
	}
	if !NewDateRange(end, start).IsEmpty() {
		t.Fatalf("expected reversed range to be empty")
	}
}

func TestDefaultRanges(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	ledger := DefaultLedgerRange(now, time.UTC)
	if ledger.Start.Format(DateLayout) != "2024-06-08" || ledger.End.Format(DateLayout) != "2024-06-11" {
		t.Fatalf("unexpected ledger range %s", ledger)
	}
	if !ledger.Contains(now) {
		t.Fatalf("expected default ledger range to contain now")
	}

	revenue := DefaultRevenueRange(now, time.UTC)
	if revenue.Start.Format(DateLayout) != "2024-06-03" || revenue.End.Format(DateLayout) != "2024-06-11" {
		t.Fatalf("unexpected revenue range %s", revenue)
	}
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	if !ContainsFold("Salary Desc", "sal") {
		t.Fatalf("expected case-insensitive match")
	}
	if !ContainsFold("Salary Desc", "DESC") {
		t.Fatalf("expected match anywhere in the string")
	}
	if !ContainsFold("anything", "") {
		t.Fatalf("expected empty substring to match")
	}
	if ContainsFold("Salary Desc", "rent") {
		t.Fatalf("unexpected match")
	}
}

func TestServiceFilterMatches(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	f := ServiceFilter{
		CustomerName: "john",
		Range:        DayRange(day, day, time.UTC),
	}

	match := &ServiceRecord{CustomerName: "John Doe", Date: day, Value: decimal.NewFromInt(50)}
	if !f.Matches(match) {
		t.Fatalf("expected service to match")
	}

	otherCustomer := &ServiceRecord{CustomerName: "Jane", Date: day}
	if f.Matches(otherCustomer) {
		t.Fatalf("expected name predicate to exclude")
	}

	otherDay := &ServiceRecord{CustomerName: "John Doe", Date: day.AddDate(0, 0, 1)}
	if f.Matches(otherDay) {
		t.Fatalf("expected date predicate to exclude")
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	rate, err := NewExchangeRate(decimal.NewFromInt(5), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usd, err := Convert(decimal.NewFromInt(500), rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usd.StringFixed(2) != "100.00" {
		t.Fatalf("expected 100.00, got %s", usd.StringFixed(2))
	}

	if _, err := NewExchangeRate(decimal.Zero, time.Now()); !errors.Is(err, ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable for zero rate, got %v", err)
	}

	if _, err := Convert(decimal.NewFromInt(1), ExchangeRate{}); !errors.Is(err, ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable for zero-value rate, got %v", err)
	}
}
