package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/regen"
)

// Untyped is implemented by every Table regardless of its element type.
type Untyped interface {
	Key() Location
	Len() int
	// Keys returns the entry keys in registration order.
	Keys() []Location
}

// Access holds the registries of one engine snapshot, by key. It replaces
// the engine's process-wide registry table: components receive an Access
// explicitly instead of reaching into global state.
type Access struct {
	registries map[Location]Untyped
}

// NewAccess returns an Access over the given registries.
func NewAccess(registries ...Untyped) (*Access, error) {
	a := &Access{registries: make(map[Location]Untyped, len(registries))}
	for _, r := range registries {
		if err := a.Add(r); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add registers a registry. Registry keys must be unique.
func (a *Access) Add(r Untyped) error {
	if a.registries == nil {
		a.registries = make(map[Location]Untyped)
	}
	if _, ok := a.registries[r.Key()]; ok {
		return fmt.Errorf("registry: duplicate registry %s", r.Key())
	}
	a.registries[r.Key()] = r
	return nil
}

// Keys returns all registry keys in sorted order.
func (a *Access) Keys() []Location {
	keys := make([]Location, 0, len(a.registries))
	for k := range a.registries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y Location) int {
		if c := strings.Compare(x.Namespace, y.Namespace); c != 0 {
			return c
		}
		return strings.Compare(x.Path, y.Path)
	})
	return keys
}

// Untyped returns the registry stored under key without asserting its type.
func (a *Access) Untyped(key Location) (Untyped, bool) {
	r, ok := a.registries[key]
	return r, ok
}

// Lookup returns the registry stored under key. It fails with an error
// matching regen.ErrUnknownRegistry when the key is absent, and with a type
// error when the registry does not hold values of type T.
func Lookup[T any](a *Access, key Location) (Registry[T], error) {
	if a == nil {
		return nil, regen.NewUnknownRegistryError(key.String())
	}
	r, ok := a.registries[key]
	if !ok {
		return nil, regen.NewUnknownRegistryError(key.String())
	}
	typed, ok := r.(Registry[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("registry: %s does not hold values of type %T", key, zero)
	}
	return typed, nil
}

// MustLookup is like Lookup but panics on error.
func MustLookup[T any](a *Access, key Location) Registry[T] {
	r, err := Lookup[T](a, key)
	if err != nil {
		panic(err)
	}
	return r
}
