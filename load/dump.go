// Package load reads generation jobs from disk: the data generator's
// registry dump, the feature policy and the YAML job file that ties them
// to target sources.
package load

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/syssam/regen"
	"github.com/syssam/regen/feature"
	"github.com/syssam/regen/registry"
)

// Entry is a registry value read from the dump.
type Entry struct {
	ProtocolID int
	Features   feature.Set
}

// RequiredFeatures implements feature.Element.
func (e Entry) RequiredFeatures() feature.Set {
	return e.Features
}

// Required maps registry key to entry key to the features the entry needs.
type Required map[registry.Location]map[registry.Location]feature.Set

// dumpJSON mirrors the data generator's registries.json:
//
//	{"minecraft:block": {"entries": {"minecraft:stone": {"protocol_id": 1}}}}
type dumpJSON map[string]struct {
	Entries map[string]struct {
		ProtocolID int `json:"protocol_id"`
	} `json:"entries"`
}

// ReadDump reads a registries.json file. Entries of each registry are
// registered in protocol id order and carry the features listed in
// required.
func ReadDump(path string, required Required) (*registry.Access, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	a, err := ParseDump(f, required)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return a, nil
}

// ParseDump decodes a registries.json document.
func ParseDump(r io.Reader, required Required) (*registry.Access, error) {
	var dump dumpJSON
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode registries: %w", err)
	}

	tables := make([]registry.Untyped, 0, len(dump))
	known := make(map[registry.Location]*registry.Table[Entry], len(dump))
	for name, reg := range dump {
		key, err := registry.ParseLocation(name)
		if err != nil {
			return nil, fmt.Errorf("registry %q: %w", name, err)
		}

		refs := make([]registry.Reference[Entry], 0, len(reg.Entries))
		for entryName, v := range reg.Entries {
			entryKey, err := registry.ParseLocation(entryName)
			if err != nil {
				return nil, fmt.Errorf("registry %s: entry %q: %w", key, entryName, err)
			}
			refs = append(refs, registry.Reference[Entry]{
				Key:   entryKey,
				Value: Entry{ProtocolID: v.ProtocolID, Features: required[key][entryKey]},
			})
		}
		slices.SortFunc(refs, func(x, y registry.Reference[Entry]) int {
			return x.Value.ProtocolID - y.Value.ProtocolID
		})

		tbl := registry.NewTable[Entry](key)
		for i, ref := range refs {
			if i > 0 && refs[i-1].Value.ProtocolID == ref.Value.ProtocolID {
				return nil, fmt.Errorf("registry %s: protocol id %d used by %s and %s",
					key, ref.Value.ProtocolID, refs[i-1].Key, ref.Key)
			}
			if err := tbl.Register(ref.Key, ref.Value); err != nil {
				return nil, err
			}
		}
		tables = append(tables, tbl)
		known[key] = tbl
	}

	for regKey, entries := range required {
		tbl, ok := known[regKey]
		if !ok {
			return nil, fmt.Errorf("required features: %w", regen.NewUnknownRegistryError(regKey.String()))
		}
		for entryKey := range entries {
			if _, ok := tbl.Get(entryKey); !ok {
				return nil, fmt.Errorf("required features: registry %s has no entry %s", regKey, entryKey)
			}
		}
	}
	return registry.NewAccess(tables...)
}
