package storeclient

import (
	"errors"
	"net/http"
)

var (
	// ErrRequestFailed covers transport failures and unexpected statuses.
	ErrRequestFailed = errors.New("record store request failed")
	// ErrConflict is returned when the store rejects a create with 409.
	ErrConflict = errors.New("record store conflict")
)

// APIError is a non-2xx answer from the record store.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap lets callers match APIError with errors.Is against the sentinels.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusConflict {
		return ErrConflict
	}
	return ErrRequestFailed
}
