package domain

import "errors"

var (
	// Register errors
	ErrRegisterNotFound   = errors.New("register entry not found")
	ErrInvalidDescription = errors.New("description is required")
	ErrNegativeValue      = errors.New("value must not be negative")
	ErrValueTooLarge      = errors.New("value exceeds maximum allowed")
	ErrValuePrecision     = errors.New("value has more than two decimal places")

	// Report errors
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrRateUnavailable  = errors.New("exchange rate unavailable")
)
