// Package regen keeps Java enum sources in sync with game registry contents.
//
// Template files carry marked regions:
//
//	public enum Material {
//	    // Start generate - Blocks
//	    // End generate - Blocks
//	}
//
// A run resolves every region against a registry (blocks, items, sounds, ...)
// and replaces its body with one enum constant per registry entry, sorted by
// path and annotated when the entry is gated behind an experimental feature.
//
// The module is organized as:
//
//   - registry: resource locations, ordered registries and registry access
//   - feature: feature flags, flag sets and the experimental policy
//   - naming: field naming strategies
//   - rewriter: the search/replace engine and the enum registry rewriter
//   - gen: configuration and the parallel file writer
//   - load: registry dumps, YAML job and policy files
//   - gomirror: Go mirror of registry contents
//   - cmd/regen: command line entry point
package regen
