package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound means the platform has no resource with the given id.
var ErrNotFound = errors.New("remote agent not found")

// APIError is any other failed gateway call: network errors carry
// StatusCode 0, HTTP failures carry the platform's status and body.
// The engine treats every APIError as "remote unavailable".
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("remote platform unreachable: %s", e.Message)
	}
	return fmt.Sprintf("remote platform returned status %d: %s", e.StatusCode, e.Message)
}
