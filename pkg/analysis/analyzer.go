package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Analyzer builds Records. The zero value is not usable; call New.
type Analyzer struct {
	now func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Analyzer that stamps records with the wall clock unless
// WithClock is given.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAnalyzer = New()

// Analyze analyzes input with the wall clock.
func Analyze(input string) *Record {
	return defaultAnalyzer.Analyze(input)
}

// Analyze normalizes input and computes its Record. It never fails.
func (a *Analyzer) Analyze(input string) *Record {
	value := Normalize(input)
	runes := []rune(value)
	hash := hashHex(value)

	freq := make(map[string]int)
	for _, r := range runes {
		freq[string(r)]++
	}

	return &Record{
		ID:    hash,
		Value: value,
		Properties: Properties{
			Length:             len(runes),
			IsPalindrome:       isPalindrome(runes),
			UniqueCharacters:   len(freq),
			WordCount:          len(strings.Fields(value)),
			SHA256Hash:         hash,
			CharacterFrequency: freq,
		},
		CreatedAt: NewTimestamp(a.now()),
	}
}

// Normalize returns the lower-cased form of s using Unicode full case mapping.
// cases.Caser is stateful, so a fresh one is taken per call.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(s)
}

// HashOf returns the Record ID that s would be stored under.
func HashOf(s string) string {
	return hashHex(Normalize(s))
}

func hashHex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// isPalindrome walks two indices inward and stops at the first mismatch.
func isPalindrome(runes []rune) bool {
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}
