package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-precision layout accepted for range bounds.
const DateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two instants.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// Contains reports whether t lies in the range, both bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// IsEmpty reports whether the range cannot contain anything (Start after End).
func (r DateRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// String formats the range using day precision.
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + "/" + r.End.Format(DateLayout)
}

// ParseDateRange parses two bounds. Each bound is either a day (YYYY-MM-DD)
// or an RFC3339 timestamp. A day used as end bound covers that whole day.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	s, err := ParseBound(start, loc, false)
	if err != nil {
		return DateRange{}, err
	}

	e, err := ParseBound(end, loc, true)
	if err != nil {
		return DateRange{}, err
	}

	return DateRange{Start: s, End: e}, nil
}

// ParseBound parses a single range bound. Day bounds are resolved in loc;
// when endOfDay is set they map to the last instant of that day.
func ParseBound(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty bound", ErrInvalidDateRange)
	}

	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is neither %s nor RFC3339", ErrInvalidDateRange, value, DateLayout)
	}

	return t, nil
}

// DayRange returns the range covering whole days from start to end in loc.
func DayRange(start, end time.Time, loc *time.Location) DateRange {
	if loc == nil {
		loc = time.UTC
	}
	s := startOfDay(start.In(loc))
	e := startOfDay(end.In(loc)).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return DateRange{Start: s, End: e}
}

// DefaultLedgerRange is the window the ledger report opens with:
// two days back through tomorrow.
func DefaultLedgerRange(now time.Time, loc *time.Location) DateRange {
	return DayRange(now.AddDate(0, 0, -2), now.AddDate(0, 0, 1), loc)
}

// DefaultRevenueRange is the window the revenue report opens with:
// one week back through tomorrow.
func DefaultRevenueRange(now time.Time, loc *time.Location) DateRange {
	return DayRange(now.AddDate(0, 0, -7), now.AddDate(0, 0, 1), loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr is contained in every string.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
