package storage

import (
	"slices"
	"sync"

	"github.com/getmockd/stringd/pkg/analysis"
)

// InMemoryStringStore is a thread-safe in-memory implementation of StringStore.
type InMemoryStringStore struct {
	mu      sync.RWMutex
	records map[string]*analysis.Record
	order   []string
}

// NewInMemoryStringStore creates a new InMemoryStringStore.
func NewInMemoryStringStore() *InMemoryStringStore {
	return &InMemoryStringStore{
		records: make(map[string]*analysis.Record),
	}
}

// InsertIfAbsent stores a copy of rec unless its ID is already present.
// A nil record is ignored and reported as inserted.
func (s *InMemoryStringStore) InsertIfAbsent(rec *analysis.Record) bool {
	if rec == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return true
	}
	s.records[rec.ID] = rec.Clone()
	s.order = append(s.order, rec.ID)
	return false
}

// Get retrieves a copy of the record stored under id.
func (s *InMemoryStringStore) Get(id string) (*analysis.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Delete removes a record by ID. Returns true if deleted, false if not found.
func (s *InMemoryStringStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; !exists {
		return false
	}
	delete(s.records, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// All returns copies of every stored record, oldest insert first.
func (s *InMemoryStringStore) All() []*analysis.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*analysis.Record, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.records[id].Clone())
	}
	return result
}

// Count returns the number of stored records.
func (s *InMemoryStringStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Ensure InMemoryStringStore implements StringStore.
var _ StringStore = (*InMemoryStringStore)(nil)
