package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// createStringSchema is the JSON Schema every POST /strings body must satisfy.
const createStringSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["value"],
  "properties": {
    "value": {"type": "string"}
  }
}`

// BodyError describes one schema violation in a request body.
type BodyError struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// LocationBody marks errors found in the request body.
const LocationBody = "body"

// errCodeSchema is the code of every BodyError.
const errCodeSchema = "schema"

var errInvalidJSON = errors.New("invalid JSON")

// createRequest is the decoded POST /strings body.
type createRequest struct {
	Value string `json:"value"`
}

// bodyValidator checks request bodies against a compiled schema.
type bodyValidator struct {
	schema *jsonschema.Schema
}

func newBodyValidator() (*bodyValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("create_string.json", strings.NewReader(createStringSchema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile("create_string.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &bodyValidator{schema: schema}, nil
}

// decode parses body, validates it and returns the request. A non-nil
// []*BodyError is returned when the JSON is well-formed but has the wrong
// shape; errInvalidJSON when it cannot be parsed at all.
func (v *bodyValidator) decode(body []byte) (*createRequest, []*BodyError, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}

	if err := v.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, collectSchemaErrors(verr, nil), nil
		}
		return nil, []*BodyError{{Location: LocationBody, Code: errCodeSchema, Message: err.Error()}}, nil
	}

	var req createRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return &req, nil, nil
}

// collectSchemaErrors flattens the leaf causes of a validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, out []*BodyError) []*BodyError {
	if len(err.Causes) == 0 {
		return append(out, &BodyError{
			Field:    fieldFromPointer(err.InstanceLocation),
			Location: LocationBody,
			Code:     errCodeSchema,
			Message:  err.Message,
		})
	}
	for _, cause := range err.Causes {
		out = collectSchemaErrors(cause, out)
	}
	return out
}

// fieldFromPointer converts a JSON Pointer to dot notation.
func fieldFromPointer(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}
