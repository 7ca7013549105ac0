package domain

import "github.com/shopspring/decimal"

// Totals is the aggregate of a list of register entries.
// Net is derived, never stored, so it always equals Incoming - Outgoing.
type Totals struct {
	Incoming decimal.Decimal
	Outgoing decimal.Decimal
}

// Net returns Incoming minus Outgoing.
func (t Totals) Net() decimal.Decimal {
	return t.Incoming.Sub(t.Outgoing)
}

// Aggregate sums entries by category.
func Aggregate(entries []*RegisterEntry) Totals {
	t := Totals{Incoming: decimal.Zero, Outgoing: decimal.Zero}
	for _, e := range entries {
		if e.IsIncoming {
			t.Incoming = t.Incoming.Add(e.Value)
		} else {
			t.Outgoing = t.Outgoing.Add(e.Value)
		}
	}
	return t
}

// SumServices returns the total value of services.
func SumServices(services []*ServiceRecord) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Value)
	}
	return total
}
