package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceRecord is a rendered service. It is owned by the service
// management side of the shop; reports only read it.
type ServiceRecord struct {
	Date         time.Time
	ID           string
	CustomerName string
	Value        decimal.Decimal
	Types        []string
	Payments     []string
}

// ServiceFilter selects services by customer name and date.
// Both predicates apply at the same time.
type ServiceFilter struct {
	CustomerName string
	Range        DateRange
}

// Matches reports whether s satisfies both predicates of the filter.
func (f ServiceFilter) Matches(s *ServiceRecord) bool {
	return ContainsFold(s.CustomerName, f.CustomerName) && f.Range.Contains(s.Date)
}
