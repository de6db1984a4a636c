package load

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/regen/feature"
	"github.com/syssam/regen/registry"
)

// DefaultFallback is the flag reported for experimental keys when the
// policy file names none.
const DefaultFallback = "minecraft:update_1_21"

// policyFile is the YAML layout of a feature policy:
//
//	flags:
//	  - {name: vanilla, stage: vanilla}
//	  - {name: update_1_21, stage: experimental}
//	fallback: update_1_21
//	filtered_registries: [block, item]
//	required_features:
//	  block:
//	    crafter: [update_1_21]
//	experimental_keys:
//	  item: [bundle]
type policyFile struct {
	Flags []struct {
		Name  string `yaml:"name"`
		Stage string `yaml:"stage"`
	} `yaml:"flags"`
	Fallback           string                         `yaml:"fallback"`
	FilteredRegistries []string                       `yaml:"filtered_registries"`
	RequiredFeatures   map[string]map[string][]string `yaml:"required_features"`
	ExperimentalKeys   map[string][]string            `yaml:"experimental_keys"`
}

// Features is a decoded policy file.
type Features struct {
	Catalog  *feature.Catalog
	Policy   *feature.Policy
	Required Required
}

// ReadPolicy reads a feature policy file.
func ReadPolicy(path string) (*Features, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	feats, err := ParsePolicy(f)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return feats, nil
}

// ParsePolicy decodes a feature policy document. Unknown fields are
// rejected.
func ParsePolicy(r io.Reader) (*Features, error) {
	var pf policyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	flags := make([]feature.Flag, 0, len(pf.Flags))
	for _, f := range pf.Flags {
		name, err := registry.ParseLocation(f.Name)
		if err != nil {
			return nil, fmt.Errorf("flag %q: %w", f.Name, err)
		}
		stage, err := feature.ParseStage(f.Stage)
		if err != nil {
			return nil, fmt.Errorf("flag %s: %w", name, err)
		}
		flags = append(flags, feature.Flag{Name: name, Stage: stage})
	}
	catalog, err := feature.NewCatalog(flags...)
	if err != nil {
		return nil, err
	}

	policy := &feature.Policy{Filtered: make(map[registry.Location]bool, len(pf.FilteredRegistries))}
	for _, name := range pf.FilteredRegistries {
		key, err := registry.ParseLocation(name)
		if err != nil {
			return nil, fmt.Errorf("filtered registry %q: %w", name, err)
		}
		policy.Filtered[key] = true
	}

	if len(pf.ExperimentalKeys) > 0 {
		fallback := pf.Fallback
		if fallback == "" {
			fallback = DefaultFallback
		}
		if policy.Fallback, err = catalog.Lookup(fallback); err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}

		keys := make(map[registry.Location][]registry.Location, len(pf.ExperimentalKeys))
		for regName, entries := range pf.ExperimentalKeys {
			regKey, err := registry.ParseLocation(regName)
			if err != nil {
				return nil, fmt.Errorf("experimental keys %q: %w", regName, err)
			}
			for _, e := range entries {
				k, err := registry.ParseLocation(e)
				if err != nil {
					return nil, fmt.Errorf("experimental keys %s: %w", regKey, err)
				}
				keys[regKey] = append(keys[regKey], k)
			}
		}
		policy.ExperimentalKeys = feature.StaticKeys(keys)
	} else if pf.Fallback != "" {
		if policy.Fallback, err = catalog.Lookup(pf.Fallback); err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
	}

	required := make(Required, len(pf.RequiredFeatures))
	for regName, entries := range pf.RequiredFeatures {
		regKey, err := registry.ParseLocation(regName)
		if err != nil {
			return nil, fmt.Errorf("required features %q: %w", regName, err)
		}
		byEntry := make(map[registry.Location]feature.Set, len(entries))
		for entryName, names := range entries {
			entryKey, err := registry.ParseLocation(entryName)
			if err != nil {
				return nil, fmt.Errorf("required features %s: %w", regKey, err)
			}
			set, err := catalog.SetOf(names...)
			if err != nil {
				return nil, fmt.Errorf("required features %s %s: %w", regKey, entryKey, err)
			}
			byEntry[entryKey] = set
		}
		required[regKey] = byEntry
	}

	return &Features{Catalog: catalog, Policy: policy, Required: required}, nil
}
