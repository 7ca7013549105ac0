package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrValidation is matched by every error returned from ValidationResult.Err.
var ErrValidation = errors.New("validation failed")

// Validation constants
const (
	MaxDescriptionLength = 500
	MaxRegisterValue     = "1000000000" // 1 billion
	ValueDecimalPlaces   = 2
)

// Field names used in validation results. They match the JSON wire names.
const (
	FieldDescription = "description"
	FieldValue       = "value"
)

// FieldError is a validation failure bound to a single input field.
type FieldError struct {
	Err     error
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// ValidationResult collects field errors. The zero value is a success.
type ValidationResult struct {
	Fields []FieldError
}

// OK reports whether no field failed.
func (r ValidationResult) OK() bool {
	return len(r.Fields) == 0
}

// Add records a failure for field when err is not nil.
func (r *ValidationResult) Add(field string, err error) {
	if err == nil {
		return
	}
	r.Fields = append(r.Fields, FieldError{Field: field, Message: err.Error(), Err: err})
}

// Field returns the first error recorded for field.
func (r ValidationResult) Field(name string) (FieldError, bool) {
	for _, f := range r.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

// Err returns nil on success, otherwise a *ValidationError.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Fields: r.Fields}
}

// ValidationError is the error form of a failed ValidationResult.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

// Unwrap exposes ErrValidation and every field sentinel to errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields)+1)
	errs = append(errs, ErrValidation)
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}

// ValidateDescription validates a register description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return ErrInvalidDescription
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateValue validates a monetary value. Zero is allowed.
func ValidateValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return ErrNegativeValue
	}

	maxValue, _ := decimal.NewFromString(MaxRegisterValue)
	if value.GreaterThan(maxValue) {
		return fmt.Errorf("%w: maximum value is %s", ErrValueTooLarge, MaxRegisterValue)
	}

	if !value.Equal(value.Truncate(ValueDecimalPlaces)) {
		return fmt.Errorf("%w: got %s", ErrValuePrecision, value)
	}

	return nil
}

// ValidateRegister validates the user-editable fields of a register entry.
func ValidateRegister(description string, value decimal.Decimal) ValidationResult {
	var r ValidationResult
	r.Add(FieldDescription, ValidateDescription(description))
	r.Add(FieldValue, ValidateValue(value))
	return r
}
