package usecase

import "time"

const (
	// DefaultQueryTimeout bounds a single report query, including the
	// exchange rate fetch that runs next to it.
	DefaultQueryTimeout = 15 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Operation labels reported to the Recorder.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"

	StatusSuccess = "success"
	StatusFailure = "failure"

	ReportKindRegister = "register"
	ReportKindRevenue  = "revenue"
)
