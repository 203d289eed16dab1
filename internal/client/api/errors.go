package api

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure classes callers branch on.
// Match with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")
)

// Error is a normalized API failure: the HTTP status plus the human-readable
// message extracted from the response body. Every non-2xx response surfaces
// as one of these; raw transport errors never escape the client.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap maps well-known statuses onto the sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
