package load

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/regen"
	"github.com/syssam/regen/gen"
	"github.com/syssam/regen/gomirror"
)

const jobYAML = `version: 1.21.4
registries: reports/registries.json
features: features.yaml
root: src
workers: 2
mirror:
  dir: registryid
targets:
  - class: org.bukkit.Material
    rewriters:
      - {registry: block, pattern: Blocks, keyed: true}
      - {registry: item, pattern: Items, naming: verbatim}
`

const materialJava = `package org.bukkit;

import org.jetbrains.annotations.ApiStatus;

public enum Material {
    // Start generate - Items
    // End generate - Items
    // Start generate - Blocks
    OLD("old");
    // End generate - Blocks

    Material(String key) {
    }
}
`

const materialWant = `package org.bukkit;

import org.jetbrains.annotations.ApiStatus;

public enum Material {
    // Start generate - Items
    // @GeneratedFrom 1.21.4
    @MinecraftExperimental(Requires.UPDATE_1_21)
    @ApiStatus.Experimental
    bundle,
    stick,
    // End generate - Items
    // Start generate - Blocks
    // @GeneratedFrom 1.21.4
    ACACIA_LOG("acacia_log"),
    @MinecraftExperimental({Requires.TRADE_REBALANCE, Requires.UPDATE_1_21})
    @ApiStatus.Experimental
    CRAFTER("crafter"),
    STONE("stone");
    // End generate - Blocks

    Material(String key) {
    }
}
`

// writeJob lays out a job directory and returns the job file path.
func writeJob(t *testing.T, job string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"regen.yaml":                   job,
		"features.yaml":                featuresYAML,
		"reports/registries.json":      registriesJSON,
		"src/org/bukkit/Material.java": materialJava,
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return filepath.Join(dir, DefaultJobFile)
}

func TestReadJob(t *testing.T) {
	path := writeJob(t, jobYAML)
	job, err := ReadJob(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, "1.21.4", job.Version)
	assert.Equal(t, 2, job.Workers)
	require.Len(t, job.Targets, 1)
	assert.Len(t, job.Targets[0].Rewriters, 2)
	assert.Equal(t, []string{
		filepath.Join(dir, "reports", "registries.json"),
		filepath.Join(dir, "features.yaml"),
	}, job.Inputs())
	assert.Equal(t, filepath.Join(dir, "registryid"), job.Path(job.Mirror.Dir))
}

func TestJobGenerate(t *testing.T) {
	path := writeJob(t, jobYAML)
	dir := filepath.Dir(path)

	job, err := ReadJob(path)
	require.NoError(t, err)
	cfg, err := job.Config()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), cfg.Root)
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, filepath.Join("org", "bukkit", "Material.java"), cfg.Targets[0].File)

	m, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, m.FilesRewritten)

	got, err := os.ReadFile(filepath.Join(dir, "src", "org", "bukkit", "Material.java"))
	require.NoError(t, err)
	if diff := cmp.Diff(materialWant, string(got)); diff != "" {
		t.Errorf("Material.java mismatch (-want +got):\n%s", diff)
	}

	mirror, err := os.ReadFile(filepath.Join(dir, "registryid", gomirror.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(mirror), `var Item = []string{"minecraft:stick", "minecraft:bundle"}`)

	t.Run("check mode is clean after generation", func(t *testing.T) {
		cfg, err := job.Config(gen.WithMode(gen.ModeCheck))
		require.NoError(t, err)
		_, err = gen.Generate(context.Background(), cfg)
		assert.NoError(t, err)
	})
}

func TestJobCheckStale(t *testing.T) {
	job, err := ReadJob(writeJob(t, jobYAML))
	require.NoError(t, err)

	cfg, err := job.Config(gen.WithMode(gen.ModeCheck))
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), cfg)
	assert.True(t, errors.Is(err, regen.ErrStale))
}

func TestJobConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		job     string
		unknown bool
	}{
		{
			name:    "unknown registry",
			job:     strings.Replace(jobYAML, "registry: item", "registry: fluid", 1),
			unknown: true,
		},
		{
			name: "unknown naming style",
			job:  strings.Replace(jobYAML, "naming: verbatim", "naming: kebab", 1),
		},
		{
			name: "bad class",
			job:  strings.Replace(jobYAML, "class: org.bukkit.Material", "class: org.bukkit", 1),
		},
		{
			name: "missing pattern",
			job:  strings.Replace(jobYAML, "pattern: Items, ", "", 1),
		},
		{
			name: "missing dump",
			job:  strings.Replace(jobYAML, "reports/registries.json", "reports/missing.json", 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := ReadJob(writeJob(t, tt.job))
			require.NoError(t, err)

			_, err = job.Config()
			require.Error(t, err)
			assert.Equal(t, tt.unknown, errors.Is(err, regen.ErrUnknownRegistry))
		})
	}
}

func TestParseJobErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "registries: r.json\nversoin: 1\n"},
		{"no registries", "version: 1.21.4\n"},
		{"target without class or file", "registries: r.json\ntargets:\n  - rewriters: [{registry: block, pattern: Blocks}]\n"},
		{"target without rewriters", "registries: r.json\ntargets:\n  - class: org.bukkit.Material\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJob(strings.NewReader(tt.doc), t.TempDir())
			assert.Error(t, err)
		})
	}
}
