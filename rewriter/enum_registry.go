package rewriter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/regen"
	"github.com/syssam/regen/feature"
	"github.com/syssam/regen/naming"
	"github.com/syssam/regen/registry"
)

// EnumRegistry fills an enum constant list with one constant per registry
// entry, sorted by path:
//
//	ACACIA_LOG("acacia_log"),
//	@MinecraftExperimental(Requires.UPDATE_1_21)
//	@ApiStatus.Experimental
//	CRAFTER("crafter"),
//	ZINC_ORE("zinc_ore");
//
// An EnumRegistry memoizes the experimental keys of its registry and must
// not be shared between goroutines.
type EnumRegistry[T any] struct {
	class       TypeRef
	pattern     string
	keyed       bool
	registry    registry.Registry[T]
	policy      *feature.Policy
	annotations Annotations
	fieldName   func(registry.Reference[T]) string
	marker      func(registry.Reference[T]) (string, bool)

	keysComputed     bool
	experimentalKeys map[registry.Location]bool
}

// EnumOption configures an EnumRegistry.
type EnumOption[T any] func(*EnumRegistry[T])

// WithPolicy sets the experimental policy. Without a policy no constant is
// annotated by the default marker.
func WithPolicy[T any](p *feature.Policy) EnumOption[T] {
	return func(e *EnumRegistry[T]) {
		e.policy = p
	}
}

// WithNamingStyle derives field names by applying style to entry paths.
func WithNamingStyle[T any](style naming.Style) EnumOption[T] {
	return func(e *EnumRegistry[T]) {
		if style != nil {
			e.fieldName = func(ref registry.Reference[T]) string {
				return style(ref.Key.Path)
			}
		}
	}
}

// WithFieldNamer replaces the field naming strategy.
func WithFieldNamer[T any](fn func(registry.Reference[T]) string) EnumOption[T] {
	return func(e *EnumRegistry[T]) {
		if fn != nil {
			e.fieldName = fn
		}
	}
}

// WithExperimentalMarker replaces the experimental marker strategy. The
// function returns the annotation argument and whether the entry is
// experimental. DefaultMarker can be used as a fallback.
func WithExperimentalMarker[T any](fn func(registry.Reference[T]) (string, bool)) EnumOption[T] {
	return func(e *EnumRegistry[T]) {
		if fn != nil {
			e.marker = fn
		}
	}
}

// WithAnnotations sets the annotation types written before experimental
// constants.
func WithAnnotations[T any](a Annotations) EnumOption[T] {
	return func(e *EnumRegistry[T]) {
		e.annotations = a
	}
}

// NewEnumRegistry returns a rewriter for the region pattern of class, filled
// from the registry registryKey of access. When keyed is set every constant
// passes its path to the enum constructor. An unknown registry key is an
// error matching regen.ErrUnknownRegistry.
func NewEnumRegistry[T any](access *registry.Access, class TypeRef, registryKey registry.Location, pattern string, keyed bool, opts ...EnumOption[T]) (*EnumRegistry[T], error) {
	if pattern == "" {
		return nil, fmt.Errorf("rewriter: empty pattern for %s", class)
	}
	reg, err := registry.Lookup[T](access, registryKey)
	if err != nil {
		return nil, fmt.Errorf("rewriter: %s: %w", class, err)
	}
	e := &EnumRegistry[T]{
		class:       class,
		pattern:     pattern,
		keyed:       keyed,
		registry:    reg,
		annotations: DefaultAnnotations,
	}
	e.fieldName = func(ref registry.Reference[T]) string {
		return naming.UpperSnake(ref.Key.Path)
	}
	e.marker = e.DefaultMarker
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// FieldCollisionError reports two registry entries whose enum constants
// would share a name.
type FieldCollisionError struct {
	Registry registry.Location
	Field    string
	First    registry.Location
	Second   registry.Location
}

// Error implements the error interface.
func (e *FieldCollisionError) Error() string {
	return fmt.Sprintf("regen: registry %s: entries %s and %s both map to field %s",
		e.Registry, e.First, e.Second, e.Field)
}

// Is reports whether the target matches regen.ErrDuplicateField.
func (e *FieldCollisionError) Is(target error) bool {
	return target == regen.ErrDuplicateField
}

// Validate checks that every entry of the registry maps to a distinct
// field name. NewEnumRegistry calls it; call it again after registering
// more entries.
func (e *EnumRegistry[T]) Validate() error {
	seen := make(map[string]registry.Location)
	for _, ref := range e.sortedHolders() {
		name := e.fieldName(ref)
		if first, ok := seen[name]; ok {
			return &FieldCollisionError{
				Registry: e.registry.Key(),
				Field:    name,
				First:    first,
				Second:   ref.Key,
			}
		}
		seen[name] = ref.Key
	}
	return nil
}

// sortedHolders returns the entries ordered by path.
func (e *EnumRegistry[T]) sortedHolders() []registry.Reference[T] {
	refs := e.registry.Holders()
	slices.SortStableFunc(refs, func(x, y registry.Reference[T]) int {
		return strings.Compare(x.Key.Path, y.Key.Path)
	})
	return refs
}

// MustNewEnumRegistry is like NewEnumRegistry but panics on error.
func MustNewEnumRegistry[T any](access *registry.Access, class TypeRef, registryKey registry.Location, pattern string, keyed bool, opts ...EnumOption[T]) *EnumRegistry[T] {
	e, err := NewEnumRegistry[T](access, class, registryKey, pattern, keyed, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Pattern implements Rewriter.
func (e *EnumRegistry[T]) Pattern() string {
	return e.pattern
}

// Class returns the enum type being rewritten.
func (e *EnumRegistry[T]) Class() TypeRef {
	return e.class
}

// RegistryKey returns the key of the registry the constants come from.
func (e *EnumRegistry[T]) RegistryKey() registry.Location {
	return e.registry.Key()
}

// Insert implements Rewriter.
func (e *EnumRegistry[T]) Insert(meta SearchMetadata, b *strings.Builder) {
	reachEnd := meta.ReachesEnd()

	refs := e.sortedHolders()
	for i, ref := range refs {
		if marker, ok := e.marker(ref); ok {
			e.annotations.WriteExperimental(b, meta, marker)
		}

		b.WriteString(meta.Indent)
		b.WriteString(e.fieldName(ref))
		if e.keyed {
			b.WriteByte('(')
			b.WriteString(strconv.Quote(ref.Key.Path))
			b.WriteByte(')')
		}
		if reachEnd && i == len(refs)-1 {
			b.WriteByte(';')
		} else {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
}

// DefaultMarker is the default experimental marker strategy. Required
// features declared by the value take precedence over the policy's
// experimental keys, which are reported with the fallback flag.
func (e *EnumRegistry[T]) DefaultMarker(ref registry.Reference[T]) (string, bool) {
	if e.policy.IsFiltered(e.registry.Key()) {
		if el, ok := any(ref.Value).(feature.Element); ok {
			if required := el.RequiredFeatures(); required.IsExperimental() {
				return feature.FormatFlagSet(required), true
			}
		}
	}
	if e.experimentalKeySet()[ref.Key] {
		return feature.FormatFlag(e.policy.Fallback), true
	}
	return "", false
}

// experimentalKeySet collects the policy's experimental keys on first use.
func (e *EnumRegistry[T]) experimentalKeySet() map[registry.Location]bool {
	if !e.keysComputed {
		keys := e.policy.CollectExperimentalKeys(e.registry.Key())
		e.experimentalKeys = make(map[registry.Location]bool, len(keys))
		for _, k := range keys {
			e.experimentalKeys[k] = true
		}
		e.keysComputed = true
	}
	return e.experimentalKeys
}
