// Package storage provides the string record store.
//
// It defines the StringStore interface for inserting, retrieving, deleting
// and enumerating analyzed strings, along with an in-memory implementation.
//
// Key types:
//
//   - StringStore: Interface defining the contract for record storage
//   - InMemoryStringStore: Thread-safe in-memory implementation of StringStore
//
// Records are keyed by their content hash. InsertIfAbsent is the single
// point where "does this string already exist" is decided; it never
// overwrites. Every read hands out a copy, so callers cannot mutate stored
// records.
//
// State lives only in process memory and grows for the life of the process.
package storage
