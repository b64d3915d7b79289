package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkspaceFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full workspace file", func(t *testing.T) {
		path := writeWorkspaceFile(t, `
workspace {
  projects = ["services", "libs"]
}

selector "deployable" {
  attribute = "tags"
  values    = ["deployable"]
}

selector "frontends" {
  attribute = "name"
  values    = ["ui", "admin"]
}

checkout "core" {
  source = "../core-dev"
}
`)
		model, err := Load(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, []string{"services", "libs"}, model.ProjectDirs)

		require.Len(t, model.Selectors, 2)
		deployable := model.Selectors["deployable"]
		require.NotNil(t, deployable)
		assert.Equal(t, "tags", deployable.Attribute)
		assert.Equal(t, []string{"deployable"}, deployable.Values)
		assert.Equal(t, []string{"ui", "admin"}, model.Selectors["frontends"].Values)

		require.Len(t, model.Checkouts, 1)
		assert.Equal(t, "../core-dev", model.Checkouts["core"].Source)
	})

	t.Run("missing workspace block fails", func(t *testing.T) {
		path := writeWorkspaceFile(t, `
selector "x" {
  attribute = "tags"
  values    = ["x"]
}
`)
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "no workspace block")
	})

	t.Run("malformed HCL fails", func(t *testing.T) {
		path := writeWorkspaceFile(t, `workspace { projects = [ `)
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "failed to parse workspace file")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
		assert.Error(t, err)
	})

	t.Run("unknown selector attribute fails", func(t *testing.T) {
		path := writeWorkspaceFile(t, `
workspace {
  projects = ["services"]
}

selector "bad" {
  attribute = "owner"
  values    = ["me"]
}
`)
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, `unknown attribute "owner"`)
	})

	t.Run("empty selector values fail", func(t *testing.T) {
		path := writeWorkspaceFile(t, `
workspace {
  projects = ["services"]
}

selector "empty" {
  attribute = "tags"
  values    = []
}
`)
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "declares no values")
	})

	t.Run("duplicate selector keys fail", func(t *testing.T) {
		path := writeWorkspaceFile(t, `
workspace {
  projects = ["services"]
}

selector "dup" {
  attribute = "tags"
  values    = ["a"]
}

selector "dup" {
  attribute = "tags"
  values    = ["b"]
}
`)
		_, err := Load(context.Background(), path)
		assert.ErrorContains(t, err, "duplicate selector")
	})
}
