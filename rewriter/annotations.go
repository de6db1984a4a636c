package rewriter

import (
	"strings"
)

// Annotations names the annotation types written in front of experimental
// constants.
type Annotations struct {
	// Minecraft carries the marker, e.g. @MinecraftExperimental(Requires.UPDATE_1_21).
	Minecraft TypeRef
	// Status flags the API as unstable, e.g. @ApiStatus.Experimental.
	Status TypeRef
}

// DefaultAnnotations are the annotations used by the Bukkit API.
var DefaultAnnotations = Annotations{
	Minecraft: TypeRef{Package: "org.bukkit", Name: "MinecraftExperimental"},
	Status:    TypeRef{Package: "org.jetbrains.annotations", Name: "ApiStatus.Experimental"},
}

// WriteExperimental writes the experimental annotation lines for marker.
func (a Annotations) WriteExperimental(b *strings.Builder, meta SearchMetadata, marker string) {
	b.WriteString(meta.Indent)
	b.WriteByte('@')
	b.WriteString(meta.Imports.Reference(a.Minecraft))
	b.WriteByte('(')
	b.WriteString(marker)
	b.WriteString(")\n")

	b.WriteString(meta.Indent)
	b.WriteByte('@')
	b.WriteString(meta.Imports.Reference(a.Status))
	b.WriteByte('\n')
}
