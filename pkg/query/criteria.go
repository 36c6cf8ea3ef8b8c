package query

import (
	"github.com/getmockd/stringd/pkg/analysis"
)

// Criteria is a fully validated filter. All fields are always set.
type Criteria struct {
	IsPalindrome      bool
	MinLength         int
	MaxLength         int
	WordCount         int
	ContainsCharacter rune
}

// Matches reports whether rec satisfies every criterion.
func (c Criteria) Matches(rec *analysis.Record) bool {
	p := rec.Properties
	return p.IsPalindrome == c.IsPalindrome &&
		p.Length >= c.MinLength &&
		p.Length <= c.MaxLength &&
		p.WordCount == c.WordCount &&
		rec.Contains(c.ContainsCharacter)
}

// Filter returns the records matching c, preserving input order.
// The result is never nil.
func Filter(c Criteria, records []*analysis.Record) []*analysis.Record {
	result := make([]*analysis.Record, 0)
	for _, rec := range records {
		if rec != nil && c.Matches(rec) {
			result = append(result, rec)
		}
	}
	return result
}
