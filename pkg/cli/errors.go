package cli

import "errors"

// Common CLI errors
var (
	ErrServerUnreachable = errors.New("server not reachable - start with: stringd serve")
	ErrStringNotFound    = errors.New("string not found")
	ErrStringExists      = errors.New("string already exists")
	ErrEmptyValue        = errors.New("value must not be empty")
)
