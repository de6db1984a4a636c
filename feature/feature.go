// Package feature models the engine's feature flags: the opt-in data packs
// that gate experimental registry entries.
package feature

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/regen"
	"github.com/syssam/regen/registry"
)

// Stage describes the stage of a feature flag.
type Stage int

const (
	_ Stage = iota

	// Experimental flags gate content that is still being tested and must be
	// enabled explicitly by server owners.
	Experimental

	// Vanilla flags are enabled on every server.
	Vanilla
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Vanilla:
		return "vanilla"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ParseStage parses a stage name as written in policy files.
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(s) {
	case "experimental":
		return Experimental, nil
	case "vanilla", "stable":
		return Vanilla, nil
	}
	return 0, fmt.Errorf("feature: unknown stage %q", s)
}

// A Flag is a single feature flag.
type Flag struct {
	// Name of the flag, e.g. "minecraft:update_1_21".
	Name registry.Location

	// Stage of the flag.
	Stage Stage
}

// Experimental reports whether the flag is not part of the vanilla set.
func (f Flag) Experimental() bool {
	return f.Stage != Vanilla
}

// Element is implemented by registry values that can only be used when a
// set of feature flags is enabled.
type Element interface {
	RequiredFeatures() Set
}

// Set is an immutable set of flags ordered by name.
type Set struct {
	flags []Flag
}

// NewSet returns a set of the given flags. Duplicate names are collapsed.
func NewSet(flags ...Flag) Set {
	if len(flags) == 0 {
		return Set{}
	}
	out := slices.Clone(flags)
	slices.SortFunc(out, func(a, b Flag) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	out = slices.CompactFunc(out, func(a, b Flag) bool { return a.Name == b.Name })
	return Set{flags: out}
}

// Len returns the number of flags in the set.
func (s Set) Len() int {
	return len(s.flags)
}

// Flags returns the flags ordered by name.
func (s Set) Flags() []Flag {
	return slices.Clone(s.flags)
}

// Contains reports whether a flag with the given name is in the set.
func (s Set) Contains(name registry.Location) bool {
	for _, f := range s.flags {
		if f.Name == name {
			return true
		}
	}
	return false
}

// IsExperimental reports whether the set requires any flag outside the
// vanilla set.
func (s Set) IsExperimental() bool {
	for _, f := range s.flags {
		if f.Experimental() {
			return true
		}
	}
	return false
}

// String returns the flag names joined by commas.
func (s Set) String() string {
	names := make([]string, len(s.flags))
	for i, f := range s.flags {
		names[i] = f.Name.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Catalog holds every known flag by name.
type Catalog struct {
	flags map[registry.Location]Flag
}

// NewCatalog returns a catalog of the given flags.
func NewCatalog(flags ...Flag) (*Catalog, error) {
	c := &Catalog{flags: make(map[registry.Location]Flag, len(flags))}
	for _, f := range flags {
		if err := f.Name.Validate(); err != nil {
			return nil, fmt.Errorf("feature: %w", err)
		}
		if _, ok := c.flags[f.Name]; ok {
			return nil, fmt.Errorf("feature: duplicate flag %s", f.Name)
		}
		if f.Stage != Experimental && f.Stage != Vanilla {
			return nil, fmt.Errorf("feature: flag %s has no stage", f.Name)
		}
		c.flags[f.Name] = f
	}
	return c, nil
}

// Lookup returns the flag with the given name. Unknown names fail with an
// error matching regen.ErrUnknownFlag.
func (c *Catalog) Lookup(name string) (Flag, error) {
	loc, err := registry.ParseLocation(name)
	if err != nil {
		return Flag{}, err
	}
	f, ok := c.flags[loc]
	if !ok {
		return Flag{}, regen.NewUnknownFlagError(loc.String())
	}
	return f, nil
}

// SetOf resolves names into a Set.
func (c *Catalog) SetOf(names ...string) (Set, error) {
	flags := make([]Flag, 0, len(names))
	for _, n := range names {
		f, err := c.Lookup(n)
		if err != nil {
			return Set{}, err
		}
		flags = append(flags, f)
	}
	return NewSet(flags...), nil
}

// Flags returns all catalogued flags ordered by name.
func (c *Catalog) Flags() []Flag {
	out := make([]Flag, 0, len(c.flags))
	for _, f := range c.flags {
		out = append(out, f)
	}
	return NewSet(out...).flags
}
