package rewriter

import (
	"strings"
	"unicode"
)

// SearchMetadata describes a located template region.
type SearchMetadata struct {
	// Indent is the leading whitespace of the start marker line.
	Indent string

	// ReplacedContent is the text between the markers before the rewrite.
	ReplacedContent string

	// Line is the 1-based line number of the start marker.
	Line int

	// Imports are the imports of the file being rewritten.
	Imports *ImportSet
}

// ReachesEnd reports whether the replaced content ended with a statement
// terminator, meaning the generated constants close the enum constant list.
func (m SearchMetadata) ReachesEnd() bool {
	return strings.HasSuffix(strings.TrimRightFunc(m.ReplacedContent, unicode.IsSpace), ";")
}
