// Package analysis computes the derived properties of a string.
//
// Every input is normalized to lower case before any property is computed,
// so the stored value, its hash and its character frequencies all describe
// the normalized form. Two inputs that differ only in case produce the same
// Record ID.
//
// Usage:
//
//	rec := analysis.Analyze("Racecar")
//	fmt.Println(rec.ID, rec.Properties.IsPalindrome) // <sha256>, true
//
// Analyze is pure apart from the created_at timestamp. Tests that need a
// stable timestamp construct an Analyzer with WithClock.
package analysis
