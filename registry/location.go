package registry

import (
	"fmt"
	"strings"
)

// DefaultNamespace is assumed when a location is written without one.
const DefaultNamespace = "minecraft"

// Location is a namespaced identifier such as "minecraft:stone".
type Location struct {
	Namespace string
	Path      string
}

// ParseLocation parses "namespace:path". A missing namespace defaults to
// DefaultNamespace.
func ParseLocation(s string) (Location, error) {
	ns, path, ok := strings.Cut(s, ":")
	if !ok {
		ns, path = DefaultNamespace, s
	}
	l := Location{Namespace: ns, Path: path}
	if err := l.Validate(); err != nil {
		return Location{}, err
	}
	return l, nil
}

// MustParseLocation is like ParseLocation but panics on error.
func MustParseLocation(s string) Location {
	l, err := ParseLocation(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate checks the namespace and path character sets.
func (l Location) Validate() error {
	if l.Namespace == "" {
		return fmt.Errorf("registry: empty namespace in %q", l.String())
	}
	if l.Path == "" {
		return fmt.Errorf("registry: empty path in %q", l.String())
	}
	for _, r := range l.Namespace {
		if !validNamespaceRune(r) {
			return fmt.Errorf("registry: invalid character %q in namespace of %q", r, l.String())
		}
	}
	for _, r := range l.Path {
		if !validPathRune(r) {
			return fmt.Errorf("registry: invalid character %q in path of %q", r, l.String())
		}
	}
	return nil
}

// String returns "namespace:path".
func (l Location) String() string {
	return l.Namespace + ":" + l.Path
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func validNamespaceRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-' || r == '.'
}

func validPathRune(r rune) bool {
	return validNamespaceRune(r) || r == '/'
}
