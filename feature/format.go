package feature

import (
	"strings"

	"github.com/syssam/regen/naming"
)

// RequiresClass is the annotation-side holder of flag constants. Markers
// reference flags as Requires.<FIELD>.
const RequiresClass = "Requires"

// FormatFlag formats a flag as an annotation argument,
// e.g. minecraft:update_1_21 becomes Requires.UPDATE_1_21.
func FormatFlag(f Flag) string {
	return RequiresClass + "." + naming.UpperSnake(f.Name.Path)
}

// FormatFlagSet formats a set as an annotation argument. A single flag is
// formatted like FormatFlag, several flags as an array initializer.
func FormatFlagSet(s Set) string {
	switch s.Len() {
	case 0:
		return "{}"
	case 1:
		return FormatFlag(s.flags[0])
	}
	parts := make([]string, len(s.flags))
	for i, f := range s.flags {
		parts[i] = FormatFlag(f)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
