package analysis

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"
)

// TimestampLayout is the wire format of CreatedAt: UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a UTC instant serialized with millisecond precision and a Z suffix.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to milliseconds and converts it to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// String returns the wire representation.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. RFC 3339 input is accepted as well.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}
	*t = NewTimestamp(parsed)
	return nil
}

// Properties holds everything derived from a normalized value.
type Properties struct {
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	SHA256Hash         string         `json:"sha256_hash"`
	CharacterFrequency map[string]int `json:"character_frequency_map"`
}

// Record is an analyzed string as stored and served.
type Record struct {
	// ID is the SHA-256 hex digest of Value and the record's unique key.
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  Timestamp  `json:"created_at"`
}

// Clone returns a deep copy of r. The frequency map is not shared.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Properties.CharacterFrequency = maps.Clone(r.Properties.CharacterFrequency)
	return &c
}

// Contains reports whether the normalized value contains ch.
func (r *Record) Contains(ch rune) bool {
	return strings.ContainsRune(r.Value, ch)
}
