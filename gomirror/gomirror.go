// Package gomirror writes registry entries as Go string slices, one
// variable per registry with entries in protocol order.
package gomirror

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/syssam/regen"
	"github.com/syssam/regen/naming"
	"github.com/syssam/regen/registry"
)

// FileName is the name of the generated file.
const FileName = "registries.go"

// VarName returns the variable name for a registry key:
// "minecraft:worldgen/biome" becomes "WorldgenBiome" and
// "paper:dummy" becomes "PaperDummy".
func VarName(key registry.Location) string {
	name := naming.ClassName(key.Path)
	if key.Namespace != registry.DefaultNamespace {
		name = naming.ClassName(key.Namespace) + name
	}
	return name
}

// Generate builds the mirror file for the given registries, or for every
// registry of access when none are given.
func Generate(access *registry.Access, pkg string, keys ...registry.Location) (*jen.File, error) {
	if len(keys) == 0 {
		keys = access.Keys()
	}

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by regen. DO NOT EDIT.")

	owners := make(map[string]registry.Location, len(keys))
	for _, key := range keys {
		r, ok := access.Untyped(key)
		if !ok {
			return nil, regen.NewUnknownRegistryError(key.String())
		}
		name := VarName(key)
		if prev, ok := owners[name]; ok {
			return nil, fmt.Errorf("gomirror: registries %s and %s both map to %s", prev, key, name)
		}
		owners[name] = key

		f.Commentf("%s lists the %s entries by protocol id.", name, key)
		f.Var().Id(name).Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
			for _, k := range r.Keys() {
				vals.Lit(k.String())
			}
		})
	}
	return f, nil
}

// Write generates the mirror into dir and returns the written path. The
// package name defaults to the base name of dir.
func Write(access *registry.Access, dir, pkg string, keys ...registry.Location) (string, error) {
	if pkg == "" {
		pkg = filepath.Base(dir)
	}
	f, err := Generate(access, pkg, keys...)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("render mirror: %w", err)
	}

	path := filepath.Join(dir, FileName)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create mirror directory: %w", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
