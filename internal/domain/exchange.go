package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currencies involved in report conversion.
const (
	CurrencyUSD = "USD"
	CurrencyBRL = "BRL"
)

// ExchangeRate is the number of BRL one USD buys. It lives only for the
// report session that fetched it.
type ExchangeRate struct {
	FetchedAt time.Time
	BRLPerUSD decimal.Decimal
}

// NewExchangeRate validates a freshly fetched rate. Only strictly positive
// rates are usable.
func NewExchangeRate(brlPerUSD decimal.Decimal, fetchedAt time.Time) (ExchangeRate, error) {
	if !brlPerUSD.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("%w: non-positive rate %s", ErrRateUnavailable, brlPerUSD)
	}
	return ExchangeRate{BRLPerUSD: brlPerUSD, FetchedAt: fetchedAt}, nil
}

// Convert turns a BRL amount into USD: amountBRL / rate.
func Convert(amountBRL decimal.Decimal, rate ExchangeRate) (decimal.Decimal, error) {
	if !rate.BRLPerUSD.IsPositive() {
		return decimal.Zero, ErrRateUnavailable
	}
	return amountBRL.Div(rate.BRLPerUSD), nil
}
