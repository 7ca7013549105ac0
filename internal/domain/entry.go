package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DatePrecision is the finest date resolution the ledger store keeps.
const DatePrecision = time.Microsecond

// Register entry categories.
const (
	CategoryIncoming = "incoming"
	CategoryOutgoing = "outgoing"
)

// RegisterEntry is a single money movement recorded in the ledger.
// The direction of the flow lives in IsIncoming; Value is never negative.
type RegisterEntry struct {
	Date        time.Time
	ID          string
	Description string
	Value       decimal.Decimal
	IsIncoming  bool
}

// Category returns the entry category label.
func (e *RegisterEntry) Category() string {
	if e.IsIncoming {
		return CategoryIncoming
	}
	return CategoryOutgoing
}

// Signed returns the value with the sign implied by the category.
func (e *RegisterEntry) Signed() decimal.Decimal {
	if e.IsIncoming {
		return e.Value
	}
	return e.Value.Neg()
}

// MatchesDescription reports whether the description contains substr,
// ignoring case. An empty substr matches every entry.
func (e *RegisterEntry) MatchesDescription(substr string) bool {
	return ContainsFold(e.Description, substr)
}

// Validate checks the entry invariants.
func (e *RegisterEntry) Validate() error {
	return ValidateRegister(e.Description, e.Value).Err()
}

// StoredDate normalizes t to UTC at the store's precision.
func StoredDate(t time.Time) time.Time {
	return t.UTC().Truncate(DatePrecision)
}
