// Package rewriter replaces marked regions of source files with generated
// text.
//
// A region is delimited by a start and an end marker carrying the same
// pattern:
//
//	public enum Material {
//	    // Start generate - Blocks
//	    ACACIA_LOG("acacia_log"),
//	    // End generate - Blocks
//	}
//
// Everything between the markers is handed to the Rewriter registered for
// the pattern as SearchMetadata and replaced by what it inserts. Markers are
// kept so that a file can be rewritten again.
package rewriter

import (
	"fmt"
	"strings"

	"github.com/syssam/regen"
)

// Marker prefixes delimiting a generated region.
const (
	StartMarker   = "// Start generate - "
	EndMarker     = "// End generate - "
	GeneratedFrom = "// @GeneratedFrom "
)

// Rewriter generates the content of one region.
type Rewriter interface {
	// Pattern identifies the region, the text after the marker prefixes.
	Pattern() string
	// Insert appends the region content to b.
	Insert(meta SearchMetadata, b *strings.Builder)
}

// Options configures Apply.
type Options struct {
	// Version, when set, is written as a "// @GeneratedFrom" line at the top
	// of every rewritten region.
	Version string
}

// MarkerError reports a region that could not be located.
type MarkerError struct {
	Pattern string
	Line    int // 1-based, 0 if unknown
	Message string
}

// Error implements the error interface.
func (e *MarkerError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("regen: marker %q (line %d): %s", e.Pattern, e.Line, e.Message)
	}
	return fmt.Sprintf("regen: marker %q: %s", e.Pattern, e.Message)
}

// Is reports whether the target matches regen.ErrMarkerNotFound.
func (e *MarkerError) Is(target error) bool {
	return target == regen.ErrMarkerNotFound
}

// PatternError reports a rewriter set that cannot be applied, independently
// of the file content.
type PatternError struct {
	Pattern string
	Message string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("regen: rewriter pattern %q: %s", e.Pattern, e.Message)
}

// Is reports whether the target matches regen.ErrInvalidRewriter.
func (e *PatternError) Is(target error) bool {
	return target == regen.ErrInvalidRewriter
}

// Apply rewrites every region of content owned by one of rewriters. Each
// rewriter's region must appear exactly once. Regions of other patterns are
// left untouched.
func Apply(content string, opts Options, rewriters ...Rewriter) (string, error) {
	byPattern := make(map[string]Rewriter, len(rewriters))
	for _, r := range rewriters {
		p := r.Pattern()
		if p == "" {
			return "", &PatternError{Message: "empty pattern"}
		}
		if _, ok := byPattern[p]; ok {
			return "", &PatternError{Pattern: p, Message: "registered twice"}
		}
		byPattern[p] = r
	}

	imports := ParseImports(content)
	lines := strings.SplitAfter(content, "\n")
	applied := make(map[string]bool, len(rewriters))

	var out strings.Builder
	out.Grow(len(content))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out.WriteString(line)

		pattern, ok := strings.CutPrefix(strings.TrimSpace(line), StartMarker)
		if !ok {
			continue
		}
		pattern = strings.TrimSpace(pattern)
		r, ok := byPattern[pattern]
		if !ok {
			continue
		}
		if applied[pattern] {
			return "", &MarkerError{Pattern: pattern, Line: i + 1, Message: "region appears twice"}
		}

		end := findEnd(lines, i+1, pattern)
		if end < 0 {
			return "", &MarkerError{Pattern: pattern, Line: i + 1, Message: "missing end marker"}
		}

		meta := SearchMetadata{
			Indent:          leadingWhitespace(line),
			ReplacedContent: strings.Join(lines[i+1:end], ""),
			Line:            i + 1,
			Imports:         imports,
		}
		if opts.Version != "" {
			out.WriteString(meta.Indent)
			out.WriteString(GeneratedFrom)
			out.WriteString(opts.Version)
			out.WriteByte('\n')
		}
		r.Insert(meta, &out)
		applied[pattern] = true

		out.WriteString(lines[end])
		i = end
	}

	for _, r := range rewriters {
		if !applied[r.Pattern()] {
			return "", &MarkerError{Pattern: r.Pattern(), Message: "start marker not found"}
		}
	}
	return out.String(), nil
}

// findEnd returns the index of the end marker line of pattern, or -1.
func findEnd(lines []string, from int, pattern string) int {
	want := EndMarker + pattern
	for j := from; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == want {
			return j
		}
		if strings.HasPrefix(trimmed, StartMarker) {
			return -1
		}
	}
	return -1
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
