package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("regen: missing configuration")
	// ErrRewriteFailed indicates a source file could not be rewritten.
	ErrRewriteFailed = errors.New("regen: rewrite failed")
	// ErrGenerationFailed indicates a failure outside of source rewriting,
	// such as emitting the Go mirror.
	ErrGenerationFailed = errors.New("regen: generation failed")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("regen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("regen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// RewriteError reports a failure to rewrite one source file.
type RewriteError struct {
	File    string
	Pattern string // rewriter pattern, if the failure is tied to one region
	Cause   error
}

// Error implements the error interface.
func (e *RewriteError) Error() string {
	var b strings.Builder
	b.WriteString("regen: rewrite ")
	b.WriteString(e.File)
	if e.Pattern != "" {
		fmt.Fprintf(&b, " (region %q)", e.Pattern)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RewriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RewriteError.
func (e *RewriteError) Is(target error) bool {
	return target == ErrRewriteFailed
}

// NewRewriteError creates a new RewriteError.
func NewRewriteError(file, pattern string, cause error) *RewriteError {
	return &RewriteError{
		File:    file,
		Pattern: pattern,
		Cause:   cause,
	}
}

// GenerationError represents a failure in a generation phase.
type GenerationError struct {
	Phase   string // "rewrite", "mirror"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("regen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsRewriteError reports whether the error is a RewriteError.
func IsRewriteError(err error) bool {
	var rewriteErr *RewriteError
	return errors.As(err, &rewriteErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
