package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescriptor(t *testing.T, root, dir, content string) string {
	t.Helper()
	full := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(full, 0o755))
	path := filepath.Join(full, DescriptorFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return full
}

func TestDiscover(t *testing.T) {
	t.Run("finds descriptors across configured directories", func(t *testing.T) {
		root := t.TempDir()
		apiRoot := writeDescriptor(t, root, "services/api", `
name: api
version: "1.2.0"
tags: [deployable]
dependencies:
  - name: core
    version: "1.0.0"
`)
		writeDescriptor(t, root, "libs/core", `
name: core
version: "1.0.0"
`)

		reg, err := Discover(context.Background(), root, []string{"services", "libs"})
		require.NoError(t, err)

		assert.Equal(t, []string{"api", "core"}, reg.Names())

		api, ok := reg.Get("api")
		require.True(t, ok)
		assert.Equal(t, "1.2.0", api.Version)
		assert.Equal(t, apiRoot, api.Root)
		assert.True(t, api.HasTag("deployable"))
		require.Len(t, api.Dependencies, 1)
		assert.Equal(t, Dependency{Name: "core", Version: "1.0.0"}, api.Dependencies[0])
	})

	t.Run("malformed descriptor excludes only that unit", func(t *testing.T) {
		root := t.TempDir()
		writeDescriptor(t, root, "good", "name: good\nversion: \"1.0\"\n")
		writeDescriptor(t, root, "broken", "name: [not: valid yaml\n")
		writeDescriptor(t, root, "nameless", "version: \"1.0\"\n")

		reg, err := Discover(context.Background(), root, []string{"."})
		require.NoError(t, err)
		assert.Equal(t, []string{"good"}, reg.Names())
	})

	t.Run("duplicate names keep the first descriptor", func(t *testing.T) {
		root := t.TempDir()
		first := writeDescriptor(t, root, "a/dup", "name: dup\nversion: \"1.0\"\n")
		writeDescriptor(t, root, "b/dup", "name: dup\nversion: \"2.0\"\n")

		reg, err := Discover(context.Background(), root, []string{"."})
		require.NoError(t, err)

		desc, ok := reg.Get("dup")
		require.True(t, ok)
		assert.Equal(t, first, desc.Root)
	})

	t.Run("nonexistent directory is a filesystem error", func(t *testing.T) {
		_, err := Discover(context.Background(), t.TempDir(), []string{"missing"})
		assert.Error(t, err)
	})
}

func TestLoadDescriptor(t *testing.T) {
	t.Run("root is the descriptor's directory", func(t *testing.T) {
		root := t.TempDir()
		dir := writeDescriptor(t, root, "unit", "name: unit\nversion: \"0.1\"\n")

		desc, err := LoadDescriptor(filepath.Join(dir, DescriptorFileName))
		require.NoError(t, err)
		assert.Equal(t, dir, desc.Root)
	})

	t.Run("missing version is rejected", func(t *testing.T) {
		root := t.TempDir()
		dir := writeDescriptor(t, root, "unit", "name: unit\n")

		_, err := LoadDescriptor(filepath.Join(dir, DescriptorFileName))
		assert.ErrorContains(t, err, "missing a version")
	})
}

func TestRegistry(t *testing.T) {
	t.Run("duplicate add fails", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Add(&Descriptor{Name: "a", Version: "1.0"}))
		assert.ErrorContains(t, reg.Add(&Descriptor{Name: "a", Version: "2.0"}), "duplicate")
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("names are sorted", func(t *testing.T) {
		reg := NewRegistry()
		for _, name := range []string{"zeta", "alpha", "mid"} {
			require.NoError(t, reg.Add(&Descriptor{Name: name, Version: "1.0"}))
		}
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
	})
}
