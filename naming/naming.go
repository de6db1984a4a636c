// Package naming turns registry paths into source identifiers.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style converts a registry path into an identifier.
type Style func(path string) string

// Style names accepted by ParseStyle.
const (
	StyleUpperSnake = "upper_snake"
	StyleVerbatim   = "verbatim"
	StyleCamel      = "camel"
)

// ParseStyle returns the style registered under name. An empty name selects
// UpperSnake.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", StyleUpperSnake:
		return UpperSnake, nil
	case StyleVerbatim:
		return Verbatim, nil
	case StyleCamel:
		return Camel, nil
	}
	return nil, fmt.Errorf("naming: unknown style %q (want %s, %s or %s)", name, StyleUpperSnake, StyleVerbatim, StyleCamel)
}

// UpperSnake is the enum constant convention: "music_disc.11" becomes
// "MUSIC_DISC_11". Upper casing is locale independent.
func UpperSnake(path string) string {
	// Casers are stateful; one per call.
	upper := cases.Upper(language.English).String(path)
	return identifier(upper)
}

// Verbatim keeps the path as is, replacing only characters that are not
// valid in identifiers.
func Verbatim(path string) string {
	return identifier(path)
}

// Camel converts a path to upper camel case: "acacia_log" becomes
// "AcaciaLog".
func Camel(path string) string {
	return identifier(inflect.Camelize(separatorsToUnderscore(path)))
}

// ClassName derives a type name from a registry path: "worldgen/biome"
// becomes "WorldgenBiome".
func ClassName(registryPath string) string {
	return Camel(registryPath)
}

// identifier replaces separators with underscores and prefixes names that
// would start with a digit.
func identifier(s string) string {
	s = separatorsToUnderscore(s)
	if s != "" && unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}

var separators = strings.NewReplacer(".", "_", "-", "_", "/", "_")

func separatorsToUnderscore(s string) string {
	return separators.Replace(s)
}
