// Package registry models the host engine's registries: ordered collections
// of values named by namespaced locations.
package registry

import (
	"fmt"
)

// Reference is a handle to a registry entry.
type Reference[T any] struct {
	Key   Location
	Value T
}

// Registry is a read-only, ordered view of registry entries.
type Registry[T any] interface {
	// Key returns the location naming the registry, e.g. "minecraft:block".
	Key() Location
	// Holders returns all entries in registration order. Callers may reorder
	// the returned slice.
	Holders() []Reference[T]
}

// Table is an in-memory Registry filled through Register.
type Table[T any] struct {
	key     Location
	entries []Reference[T]
	index   map[Location]int
}

// NewTable returns an empty registry named key.
func NewTable[T any](key Location) *Table[T] {
	return &Table[T]{
		key:   key,
		index: make(map[Location]int),
	}
}

// Key returns the registry location.
func (t *Table[T]) Key() Location {
	return t.key
}

// Register appends a new entry. Keys must be unique within a registry.
func (t *Table[T]) Register(key Location, value T) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("registry: duplicate key %s in %s", key, t.key)
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Reference[T]{Key: key, Value: value})
	return nil
}

// Get returns the value registered under key.
func (t *Table[T]) Get(key Location) (T, bool) {
	i, ok := t.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return t.entries[i].Value, true
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Holders returns a copy of the entries in registration order.
func (t *Table[T]) Holders() []Reference[T] {
	out := make([]Reference[T], len(t.entries))
	copy(out, t.entries)
	return out
}

// Keys returns the entry keys in registration order.
func (t *Table[T]) Keys() []Location {
	keys := make([]Location, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}
