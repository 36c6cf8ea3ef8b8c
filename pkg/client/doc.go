// Package client is an HTTP client for a running stringd server.
//
// Errors returned for non-2xx responses are *APIError values that unwrap to
// ErrNotFound, ErrConflict or ErrValidation, so callers can use errors.Is.
package client
