package share

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrNotFound    = errors.New("invalid or expired share link")
	ErrExpired     = errors.New("share link has expired")
	ErrLoadFailed  = errors.New("failed to load shared album")
	ErrIssueFailed = errors.New("failed to generate share link")
)

// Message returns the text shown to a visitor for a lifecycle error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Invalid or expired share link"
	case errors.Is(err, ErrExpired):
		return "This share link has expired"
	case errors.Is(err, ErrIssueFailed):
		return "Failed to generate share link"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled"
	default:
		return "Failed to load shared album"
	}
}

// Status maps a lifecycle error to the HTTP status a visitor receives.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExpired):
		return http.StatusGone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
