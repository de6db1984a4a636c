package rewriter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/regen"
	"github.com/syssam/regen/feature"
	"github.com/syssam/regen/naming"
	"github.com/syssam/regen/registry"
)

var (
	vanillaFlag   = feature.Flag{Name: registry.MustParseLocation("vanilla"), Stage: feature.Vanilla}
	update121Flag = feature.Flag{Name: registry.MustParseLocation("update_1_21"), Stage: feature.Experimental}
	bundleFlag    = feature.Flag{Name: registry.MustParseLocation("bundle"), Stage: feature.Experimental}

	blockKey   = registry.MustParseLocation("block")
	materialTy = MustParseTypeRef("org.bukkit.Material")
)

// block is a registry value declaring its required features.
type block struct {
	features feature.Set
}

func (b block) RequiredFeatures() feature.Set { return b.features }

func newBlocks(t *testing.T, entries ...registry.Reference[block]) *registry.Access {
	t.Helper()
	tbl := registry.NewTable[block](blockKey)
	for _, e := range entries {
		require.NoError(t, tbl.Register(e.Key, e.Value))
	}
	a, err := registry.NewAccess(tbl)
	require.NoError(t, err)
	return a
}

func ref(path string, flags ...feature.Flag) registry.Reference[block] {
	return registry.Reference[block]{
		Key:   registry.MustParseLocation(path),
		Value: block{features: feature.NewSet(flags...)},
	}
}

func insert(r Rewriter, meta SearchMetadata) string {
	var b strings.Builder
	r.Insert(meta, &b)
	return b.String()
}

func TestEnumRegistryExample(t *testing.T) {
	a := newBlocks(t, ref("zinc_ore"), ref("acacia_log"))
	e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", true,
		WithNamingStyle[block](naming.Verbatim))

	out := insert(e, SearchMetadata{ReplacedContent: "    STONE;\n"})

	assert.Equal(t, "acacia_log(\"acacia_log\"),\nzinc_ore(\"zinc_ore\");\n", out)
}

func TestEnumRegistryInsert(t *testing.T) {
	t.Run("one line per entry sorted by path", func(t *testing.T) {
		a := newBlocks(t, ref("stone"), ref("acacia_log"), ref("oak_log"), ref("zinc_ore"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false)

		out := insert(e, SearchMetadata{Indent: "    "})
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

		assert.Equal(t, []string{
			"    ACACIA_LOG,",
			"    OAK_LOG,",
			"    STONE,",
			"    ZINC_ORE,",
		}, lines)
	})

	t.Run("ordinal comparison", func(t *testing.T) {
		a := newBlocks(t, ref("b"), ref("a_b"), ref("a"), ref("a.c"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", true,
			WithNamingStyle[block](naming.Verbatim))

		out := insert(e, SearchMetadata{})
		assert.Equal(t, "a(\"a\"),\na_c(\"a.c\"),\na_b(\"a_b\"),\nb(\"b\"),\n", out)
	})

	t.Run("terminator only when region ended with one", func(t *testing.T) {
		a := newBlocks(t, ref("stone"), ref("dirt"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false)

		assert.Equal(t, "DIRT,\nSTONE;\n", insert(e, SearchMetadata{ReplacedContent: "OLD;  \n\t\n"}))
		assert.Equal(t, "DIRT,\nSTONE,\n", insert(e, SearchMetadata{ReplacedContent: "OLD,\n"}))
		assert.Equal(t, "DIRT,\nSTONE,\n", insert(e, SearchMetadata{}))
	})

	t.Run("keyed argument", func(t *testing.T) {
		a := newBlocks(t, ref("oak_log"), ref("stone"))

		keyed := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", true)
		for _, line := range strings.Split(strings.TrimSpace(insert(keyed, SearchMetadata{})), "\n") {
			assert.Contains(t, line, "(\"")
		}
		assert.Contains(t, insert(keyed, SearchMetadata{}), `OAK_LOG("oak_log"),`)

		plain := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false)
		assert.NotContains(t, insert(plain, SearchMetadata{}), "(")
	})

	t.Run("empty registry", func(t *testing.T) {
		a := newBlocks(t)
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", true)
		assert.Empty(t, insert(e, SearchMetadata{ReplacedContent: "X;\n"}))
	})

	t.Run("custom field namer", func(t *testing.T) {
		a := newBlocks(t, ref("stone"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithFieldNamer(func(r registry.Reference[block]) string {
				return "LEGACY_" + naming.UpperSnake(r.Key.Path)
			}))
		assert.Equal(t, "LEGACY_STONE,\n", insert(e, SearchMetadata{}))
	})
}

func TestEnumRegistryExperimental(t *testing.T) {
	policy := &feature.Policy{
		Filtered: map[registry.Location]bool{blockKey: true},
		Fallback: update121Flag,
		ExperimentalKeys: feature.StaticKeys(map[registry.Location][]registry.Location{
			blockKey: {registry.MustParseLocation("crafter"), registry.MustParseLocation("bundle_block")},
		}),
	}

	t.Run("value features", func(t *testing.T) {
		a := newBlocks(t, ref("stone", vanillaFlag), ref("bundle_block", bundleFlag))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithPolicy[block](policy))

		out := insert(e, SearchMetadata{Indent: "  "})
		assert.Equal(t,
			"  @org.bukkit.MinecraftExperimental(Requires.BUNDLE)\n"+
				"  @org.jetbrains.annotations.ApiStatus.Experimental\n"+
				"  BUNDLE_BLOCK,\n"+
				"  STONE,\n",
			out)
	})

	t.Run("fallback keys", func(t *testing.T) {
		a := newBlocks(t, ref("crafter"), ref("stone"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithPolicy[block](policy))

		out := insert(e, SearchMetadata{})
		assert.Equal(t,
			"@org.bukkit.MinecraftExperimental(Requires.UPDATE_1_21)\n"+
				"@org.jetbrains.annotations.ApiStatus.Experimental\n"+
				"CRAFTER,\n"+
				"STONE,\n",
			out)
	})

	t.Run("value features take precedence", func(t *testing.T) {
		a := newBlocks(t, ref("bundle_block", bundleFlag))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithPolicy[block](policy))

		out := insert(e, SearchMetadata{})
		assert.Contains(t, out, "(Requires.BUNDLE)")
		assert.NotContains(t, out, "UPDATE_1_21")
	})

	t.Run("unfiltered registry ignores value features", func(t *testing.T) {
		unfiltered := &feature.Policy{Fallback: update121Flag}
		a := newBlocks(t, ref("bundle_block", bundleFlag))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithPolicy[block](unfiltered))

		assert.Equal(t, "BUNDLE_BLOCK,\n", insert(e, SearchMetadata{}))
	})

	t.Run("no policy", func(t *testing.T) {
		a := newBlocks(t, ref("bundle_block", bundleFlag), ref("crafter"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false)

		assert.Equal(t, "BUNDLE_BLOCK,\nCRAFTER,\n", insert(e, SearchMetadata{}))
	})

	t.Run("imported annotations use simple names", func(t *testing.T) {
		a := newBlocks(t, ref("crafter"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithPolicy[block](policy))

		imports := ParseImports("package org.bukkit;\n\nimport org.jetbrains.annotations.ApiStatus;\n")
		out := insert(e, SearchMetadata{Imports: imports})
		assert.Equal(t,
			"@MinecraftExperimental(Requires.UPDATE_1_21)\n"+
				"@ApiStatus.Experimental\n"+
				"CRAFTER,\n",
			out)
	})

	t.Run("experimental keys are collected once", func(t *testing.T) {
		calls := 0
		counting := &feature.Policy{
			Fallback: update121Flag,
			ExperimentalKeys: func(registry.Location) []registry.Location {
				calls++
				return []registry.Location{registry.MustParseLocation("crafter")}
			},
		}
		a := newBlocks(t, ref("crafter"), ref("stone"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithPolicy[block](counting))

		first := insert(e, SearchMetadata{})
		second := insert(e, SearchMetadata{})

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("custom marker", func(t *testing.T) {
		a := newBlocks(t, ref("crafter"), ref("stone"))
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", false,
			WithExperimentalMarker(func(r registry.Reference[block]) (string, bool) {
				return "Requires.CUSTOM", r.Key.Path == "stone"
			}))

		out := insert(e, SearchMetadata{})
		assert.Equal(t,
			"CRAFTER,\n"+
				"@org.bukkit.MinecraftExperimental(Requires.CUSTOM)\n"+
				"@org.jetbrains.annotations.ApiStatus.Experimental\n"+
				"STONE,\n",
			out)
	})
}

func TestNewEnumRegistry(t *testing.T) {
	a := newBlocks(t, ref("stone"))

	t.Run("unknown registry", func(t *testing.T) {
		_, err := NewEnumRegistry[block](a, materialTy, registry.MustParseLocation("item"), "Items", true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, regen.ErrUnknownRegistry))
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := NewEnumRegistry[string](a, materialTy, blockKey, "Blocks", true)
		assert.Error(t, err)
	})

	t.Run("empty pattern", func(t *testing.T) {
		_, err := NewEnumRegistry[block](a, materialTy, blockKey, "", true)
		assert.Error(t, err)
	})

	t.Run("field name collision", func(t *testing.T) {
		tests := []struct {
			name   string
			paths  []string
			opts   []EnumOption[block]
			field  string
			first  string
			second string
		}{
			{
				name:   "upper snake",
				paths:  []string{"music_disc_11", "stone", "music_disc.11"},
				field:  "MUSIC_DISC_11",
				first:  "music_disc.11",
				second: "music_disc_11",
			},
			{
				name:   "verbatim",
				paths:  []string{"a_b", "a.b"},
				opts:   []EnumOption[block]{WithNamingStyle[block](naming.Verbatim)},
				field:  "a_b",
				first:  "a.b",
				second: "a_b",
			},
			{
				name:  "custom namer",
				paths: []string{"oak_log", "birch_log"},
				opts: []EnumOption[block]{WithFieldNamer(func(registry.Reference[block]) string {
					return "LOG"
				})},
				field:  "LOG",
				first:  "birch_log",
				second: "oak_log",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				refs := make([]registry.Reference[block], len(tt.paths))
				for i, p := range tt.paths {
					refs[i] = ref(p)
				}

				_, err := NewEnumRegistry[block](newBlocks(t, refs...), materialTy, blockKey, "Blocks", true, tt.opts...)
				require.Error(t, err)
				assert.ErrorIs(t, err, regen.ErrDuplicateField)

				var fce *FieldCollisionError
				require.True(t, errors.As(err, &fce))
				assert.Equal(t, blockKey, fce.Registry)
				assert.Equal(t, tt.field, fce.Field)
				assert.Equal(t, registry.MustParseLocation(tt.first), fce.First)
				assert.Equal(t, registry.MustParseLocation(tt.second), fce.Second)
				assert.Contains(t, err.Error(), tt.first)
				assert.Contains(t, err.Error(), tt.second)
			})
		}
	})

	t.Run("validate after registering more entries", func(t *testing.T) {
		tbl := registry.NewTable[block](blockKey)
		require.NoError(t, tbl.Register(registry.MustParseLocation("music_disc.11"), block{}))
		a, err := registry.NewAccess(tbl)
		require.NoError(t, err)

		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", true)
		require.NoError(t, e.Validate())

		require.NoError(t, tbl.Register(registry.MustParseLocation("music_disc_11"), block{}))
		assert.ErrorIs(t, e.Validate(), regen.ErrDuplicateField)
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewEnumRegistry[block](a, materialTy, registry.MustParseLocation("fluid"), "Fluids", false)
		})
	})

	t.Run("accessors", func(t *testing.T) {
		e := MustNewEnumRegistry[block](a, materialTy, blockKey, "Blocks", true)
		assert.Equal(t, "Blocks", e.Pattern())
		assert.Equal(t, materialTy, e.Class())
		assert.Equal(t, blockKey, e.RegistryKey())
	})
}
