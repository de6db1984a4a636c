package rewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		fqn     string
		want    TypeRef
		wantErr bool
	}{
		{"org.bukkit.Material", TypeRef{"org.bukkit", "Material"}, false},
		{"org.jetbrains.annotations.ApiStatus.Experimental", TypeRef{"org.jetbrains.annotations", "ApiStatus.Experimental"}, false},
		{"Material", TypeRef{"", "Material"}, false},
		{"org.bukkit", TypeRef{}, true},
		{"org..Material", TypeRef{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.fqn, func(t *testing.T) {
			got, err := ParseTypeRef(tt.fqn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fqn, got.String())
		})
	}
}

func TestTypeRefSourcePath(t *testing.T) {
	assert.Equal(t, "org/bukkit/Material.java", MustParseTypeRef("org.bukkit.Material").SourcePath())
	assert.Equal(t, "org/bukkit/Sound.java", MustParseTypeRef("org.bukkit.Sound.Inner").SourcePath())
	assert.Equal(t, "Material.java", MustParseTypeRef("Material").SourcePath())
	assert.Panics(t, func() { MustParseTypeRef("lower.case") })
}

func TestImportSet(t *testing.T) {
	src := `package org.bukkit.block;

import java.util.List;
import org.jetbrains.annotations.*;
import org.bukkit.MinecraftExperimental;
import static org.bukkit.Util.helper;

@NullMarked
public enum BlockType {
}
`
	imports := ParseImports(src)
	assert.Equal(t, "org.bukkit.block", imports.Package())

	tests := []struct {
		ref  TypeRef
		want string
	}{
		{TypeRef{"org.bukkit", "MinecraftExperimental"}, "MinecraftExperimental"},
		{TypeRef{"org.jetbrains.annotations", "ApiStatus.Experimental"}, "ApiStatus.Experimental"},
		{TypeRef{"org.bukkit.block", "Sibling"}, "Sibling"},
		{TypeRef{"java.lang", "Deprecated"}, "Deprecated"},
		{TypeRef{"org.bukkit", "Util"}, "org.bukkit.Util"},
		{TypeRef{"java.util", "Map"}, "java.util.Map"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, imports.Reference(tt.ref), tt.ref.String())
	}

	var none *ImportSet
	assert.Equal(t, "org.bukkit.MinecraftExperimental", none.Reference(TypeRef{"org.bukkit", "MinecraftExperimental"}))
	assert.Equal(t, "", none.Package())
}
