package query

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Query parameter names.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// result is the outcome of parsing one field: a value or the reason it failed.
type result[T any] struct {
	value T
	err   *FieldError
}

func ok[T any](v T) result[T] { return result[T]{value: v} }

func fail[T any](field, code, message, received string) result[T] {
	return result[T]{err: &FieldError{
		Field:    field,
		Location: LocationQueryParams,
		Code:     code,
		Message:  message,
		Received: received,
	}}
}

// Parse validates the five filter parameters and builds a Criteria.
// Every invalid or missing parameter is reported in a single *ValidationError.
func Parse(values url.Values) (Criteria, error) {
	isPal := parseBool(values, ParamIsPalindrome)
	minLen := parsePositiveInt(values, ParamMinLength)
	maxLen := parsePositiveInt(values, ParamMaxLength)
	words := parsePositiveInt(values, ParamWordCount)
	char := parseChar(values, ParamContainsCharacter)

	var verr ValidationError
	for _, fe := range []*FieldError{isPal.err, minLen.err, maxLen.err, words.err, char.err} {
		if fe != nil {
			verr.Errors = append(verr.Errors, fe)
		}
	}
	if len(verr.Errors) > 0 {
		return Criteria{}, &verr
	}

	return Criteria{
		IsPalindrome:      isPal.value,
		MinLength:         minLen.value,
		MaxLength:         maxLen.value,
		WordCount:         words.value,
		ContainsCharacter: char.value,
	}, nil
}

func lookup(values url.Values, field string) (string, bool) {
	v, present := values[field]
	if !present || len(v) == 0 || v[0] == "" {
		return "", false
	}
	return v[0], true
}

func parseBool(values url.Values, field string) result[bool] {
	raw, present := lookup(values, field)
	if !present {
		return fail[bool](field, ErrCodeRequired, field+" is required", "")
	}
	switch strings.ToLower(raw) {
	case "true":
		return ok(true)
	case "false":
		return ok(false)
	}
	return fail[bool](field, ErrCodeType, field+" must be a boolean value (true/false)", raw)
}

func parsePositiveInt(values url.Values, field string) result[int] {
	raw, present := lookup(values, field)
	if !present {
		return fail[int](field, ErrCodeRequired, field+" is required", "")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fail[int](field, ErrCodeType, field+" must be an integer", raw)
	}
	if n <= 0 {
		return fail[int](field, ErrCodeMin, field+" must be a positive integer", raw)
	}
	return ok(n)
}

// parseChar accepts exactly one code point. The character is matched as
// given; stored values are lower-case, so upper-case characters match nothing.
func parseChar(values url.Values, field string) result[rune] {
	raw, present := lookup(values, field)
	if !present {
		return fail[rune](field, ErrCodeRequired, field+" is required", "")
	}
	if utf8.RuneCountInString(raw) != 1 {
		return fail[rune](field, ErrCodeSingleChar, field+" must be a single character", raw)
	}
	r, _ := utf8.DecodeRuneInString(raw)
	return ok(r)
}

// Encode renders c as query parameters accepted by Parse.
func (c Criteria) Encode() url.Values {
	v := url.Values{}
	v.Set(ParamIsPalindrome, strconv.FormatBool(c.IsPalindrome))
	v.Set(ParamMinLength, strconv.Itoa(c.MinLength))
	v.Set(ParamMaxLength, strconv.Itoa(c.MaxLength))
	v.Set(ParamWordCount, strconv.Itoa(c.WordCount))
	v.Set(ParamContainsCharacter, string(c.ContainsCharacter))
	return v
}
