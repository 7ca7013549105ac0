package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name         string
		entries      []*RegisterEntry
		wantIncoming string
		wantOutgoing string
		wantNet      string
	}{
		{
			name:         "empty list",
			wantIncoming: "0",
			wantOutgoing: "0",
			wantNet:      "0",
		},
		{
			name: "salary and rent",
			entries: []*RegisterEntry{
				{ID: "1", IsIncoming: true, Description: "Salary", Value: decimal.NewFromInt(5000)},
				{ID: "2", IsIncoming: false, Description: "Rent", Value: decimal.NewFromInt(1500)},
			},
			wantIncoming: "5000",
			wantOutgoing: "1500",
			wantNet:      "3500",
		},
		{
			name: "outgoing exceeds incoming",
			entries: []*RegisterEntry{
				{ID: "1", IsIncoming: true, Value: decimal.RequireFromString("10.10")},
				{ID: "2", IsIncoming: false, Value: decimal.RequireFromString("20.20")},
			},
			wantIncoming: "10.1",
			wantOutgoing: "20.2",
			wantNet:      "-10.1",
		},
		{
			name: "no floating point drift",
			entries: []*RegisterEntry{
				{IsIncoming: true, Value: decimal.RequireFromString("0.1")},
				{IsIncoming: true, Value: decimal.RequireFromString("0.2")},
			},
			wantIncoming: "0.3",
			wantOutgoing: "0",
			wantNet:      "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.entries)

			if !got.Incoming.Equal(decimal.RequireFromString(tt.wantIncoming)) {
				t.Fatalf("incoming = %s, want %s", got.Incoming, tt.wantIncoming)
			}
			if !got.Outgoing.Equal(decimal.RequireFromString(tt.wantOutgoing)) {
				t.Fatalf("outgoing = %s, want %s", got.Outgoing, tt.wantOutgoing)
			}
			if !got.Net().Equal(decimal.RequireFromString(tt.wantNet)) {
				t.Fatalf("net = %s, want %s", got.Net(), tt.wantNet)
			}
			if !got.Incoming.Sub(got.Outgoing).Equal(got.Net()) {
				t.Fatalf("net must equal incoming - outgoing")
			}
		})
	}
}

func TestSumServices(t *testing.T) {
	services := []*ServiceRecord{
		{ID: "s1", CustomerName: "John Doe", Value: decimal.NewFromInt(500)},
		{ID: "s2", CustomerName: "Jane Doe", Value: decimal.RequireFromString("35.50")},
	}

	if got := SumServices(services); !got.Equal(decimal.RequireFromString("535.5")) {
		t.Fatalf("expected 535.5, got %s", got)
	}

	if got := SumServices(nil); !got.IsZero() {
		t.Fatalf("expected zero for no services, got %s", got)
	}
}

func TestRegisterEntrySigned(t *testing.T) {
	in := &RegisterEntry{IsIncoming: true, Value: decimal.NewFromInt(10)}
	out := &RegisterEntry{IsIncoming: false, Value: decimal.NewFromInt(10)}

	if !in.Signed().Equal(decimal.NewFromInt(10)) || in.Category() != CategoryIncoming {
		t.Fatalf("unexpected incoming entry view: %s %s", in.Signed(), in.Category())
	}
	if !out.Signed().Equal(decimal.NewFromInt(-10)) || out.Category() != CategoryOutgoing {
		t.Fatalf("unexpected outgoing entry view: %s %s", out.Signed(), out.Category())
	}
}

func TestStoredDate(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 5, 10, 9, 0, 0, 123456789, sp)

	got := StoredDate(in)
	want := time.Date(2024, 5, 10, 12, 0, 0, 123456000, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("StoredDate(%s) = %s, want %s", in, got, want)
	}
	if !NewDateRange(got, got).Contains(got) {
		t.Fatalf("single-instant range must contain its own bound")
	}
}
