package storage

import (
	"github.com/getmockd/stringd/pkg/analysis"
)

// StringStore defines the interface for storing and retrieving analyzed strings.
type StringStore interface {
	// InsertIfAbsent stores rec unless a record with the same ID exists.
	// Returns true on conflict, in which case the store is unchanged.
	InsertIfAbsent(rec *analysis.Record) bool

	// Get retrieves a record by ID. The second result is false if not found.
	Get(id string) (*analysis.Record, bool)

	// Delete removes a record by ID. Returns true if deleted, false if not found.
	Delete(id string) bool

	// All returns a snapshot of every stored record in insertion order.
	All() []*analysis.Record

	// Count returns the number of stored records.
	Count() int
}
