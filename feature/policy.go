package feature

import (
	"github.com/syssam/regen/registry"
)

// KeyCollector returns the keys of a registry that only exist in
// experimental data packs.
type KeyCollector func(registryKey registry.Location) []registry.Location

// Policy is the engine-defined data that decides which entries are
// experimental. It is injected rather than derived from game content.
type Policy struct {
	// Filtered lists the registries whose values declare their required
	// features through Element.
	Filtered map[registry.Location]bool

	// Fallback is the flag reported for keys returned by ExperimentalKeys.
	Fallback Flag

	// ExperimentalKeys collects the keys flagged experimental outside of
	// the values themselves. May be nil.
	ExperimentalKeys KeyCollector
}

// IsFiltered reports whether values of the registry declare required
// features.
func (p *Policy) IsFiltered(registryKey registry.Location) bool {
	if p == nil {
		return false
	}
	return p.Filtered[registryKey]
}

// CollectExperimentalKeys runs the collector for a registry. A policy
// without collector returns nil.
func (p *Policy) CollectExperimentalKeys(registryKey registry.Location) []registry.Location {
	if p == nil || p.ExperimentalKeys == nil {
		return nil
	}
	return p.ExperimentalKeys(registryKey)
}

// StaticKeys returns a KeyCollector backed by a fixed table.
func StaticKeys(keys map[registry.Location][]registry.Location) KeyCollector {
	return func(registryKey registry.Location) []registry.Location {
		return keys[registryKey]
	}
}
