package query

import (
	"fmt"
	"strings"
)

// Error codes for machine-readable identification of field failures.
const (
	ErrCodeRequired     = "required"
	ErrCodeType         = "type"
	ErrCodeMin          = "min"
	ErrCodeSingleChar   = "single_character"
	LocationQueryParams = "query"
)

// FieldError describes why one query parameter was rejected.
type FieldError struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Received string `json:"received,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Location, e.Field, e.Message)
}

// ValidationError aggregates every FieldError found while parsing a query.
type ValidationError struct {
	Errors []*FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid query parameters: " + strings.Join(msgs, "; ")
}

// Fields returns the names of the rejected parameters in parse order.
func (e *ValidationError) Fields() []string {
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Field
	}
	return names
}
