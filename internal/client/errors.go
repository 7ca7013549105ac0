package client

import (
	"fmt"
)

// NetworkError is a failed exchange with the ledger server: the request
// could not be made, or the server answered with a non-2xx status.
type NetworkError struct {
	Err        error
	Op         string
	Message    string
	StatusCode int
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
