package regen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrUnknownRegistry is returned when a registry key cannot be resolved
	// against the registry access it was looked up in.
	ErrUnknownRegistry = errors.New("regen: unknown registry")

	// ErrUnknownFlag is returned when a feature flag name is not part of the
	// flag catalog.
	ErrUnknownFlag = errors.New("regen: unknown feature flag")

	// ErrMarkerNotFound is returned when a template file does not contain the
	// generation markers of a rewriter.
	ErrMarkerNotFound = errors.New("regen: generation marker not found")

	// ErrInvalidRewriter is returned when a set of rewriters cannot be applied
	// together, such as an empty pattern or a pattern registered twice.
	ErrInvalidRewriter = errors.New("regen: invalid rewriter")

	// ErrDuplicateField is returned when two registry entries map to the same
	// enum constant name.
	ErrDuplicateField = errors.New("regen: duplicate enum field")

	// ErrStale is returned in check mode when generated regions are out of date.
	ErrStale = errors.New("regen: generated sources are stale")
)

// NotFoundError represents a lookup of a registry or feature flag that
// does not exist.
type NotFoundError struct {
	kind string // "registry" or "feature flag"
	key  string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("regen: %s %q not found", e.kind, e.key)
}

// Is reports whether the target error matches the sentinel of the lookup kind.
// This allows errors.Is(err, ErrUnknownRegistry) to return true.
func (e *NotFoundError) Is(err error) bool {
	switch e.kind {
	case kindRegistry:
		return err == ErrUnknownRegistry
	case kindFlag:
		return err == ErrUnknownFlag
	}
	return false
}

// Kind returns what was looked up.
func (e *NotFoundError) Kind() string {
	return e.kind
}

// Key returns the key that was searched for.
func (e *NotFoundError) Key() string {
	return e.key
}

const (
	kindRegistry = "registry"
	kindFlag     = "feature flag"
)

// NewUnknownRegistryError returns a NotFoundError for a registry key.
func NewUnknownRegistryError(key string) *NotFoundError {
	return &NotFoundError{kind: kindRegistry, key: key}
}

// NewUnknownFlagError returns a NotFoundError for a feature flag name.
func NewUnknownFlagError(name string) *NotFoundError {
	return &NotFoundError{kind: kindFlag, key: name}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownRegistry) || errors.Is(err, ErrUnknownFlag)
}

// StaleError lists the files whose generated regions differ from what the
// current registries would produce.
type StaleError struct {
	Files []string
}

// Error returns the error string.
func (e *StaleError) Error() string {
	if len(e.Files) == 1 {
		return fmt.Sprintf("regen: generated sources are stale: %s", e.Files[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "regen: %d generated sources are stale:", len(e.Files))
	for _, f := range e.Files {
		sb.WriteString("\n  ")
		sb.WriteString(f)
	}
	return sb.String()
}

// Is reports whether the target error matches ErrStale.
func (e *StaleError) Is(err error) bool {
	return err == ErrStale
}

// IsStale returns true if the error is a StaleError.
func IsStale(err error) bool {
	if err == nil {
		return false
	}
	var e *StaleError
	return errors.As(err, &e) || errors.Is(err, ErrStale)
}
