package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/subgrid/internal/iterate"
)

// writeWorkspace lays out a small monorepo on disk: app depends on api and
// ui, api and ui depend on core, docs stands alone.
func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	write("workspace.hcl", `
workspace {
  projects = ["services", "libs"]
}

selector "deployable" {
  attribute = "tags"
  values    = ["deployable"]
}
`)
	write("services/app/project.yaml", `
name: app
version: "2.0"
tags: [deployable]
dependencies:
  - {name: api, version: "1.0"}
  - {name: ui, version: "1.0"}
`)
	write("services/api/project.yaml", `
name: api
version: "1.0"
tags: [deployable]
dependencies:
  - {name: core, version: "1.0"}
`)
	write("services/ui/project.yaml", `
name: ui
version: "1.0"
dependencies:
  - {name: core, version: "1.0"}
`)
	write("libs/core/project.yaml", `
name: core
version: "1.0"
`)
	write("services/docs/project.yaml", `
name: docs
version: "0.1"
`)

	return filepath.Join(root, "workspace.hcl")
}

func newTestApp(t *testing.T, configPath string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	config, err := NewConfig(Config{ConfigPath: configPath, LogLevel: "error", LogFormat: "text"})
	require.NoError(t, err)

	a, err := NewApp(&out, &out, config)
	require.NoError(t, err)
	return a, &out
}

func TestNewApp(t *testing.T) {
	t.Run("loads config, discovers projects, builds graph", func(t *testing.T) {
		a, _ := newTestApp(t, writeWorkspace(t))
		assert.Equal(t, []string{"api", "app", "core", "docs", "ui"}, a.Registry().Names())
		assert.Equal(t, 5, a.Graph().Len())
	})

	t.Run("missing workspace file is fatal", func(t *testing.T) {
		var out bytes.Buffer
		config, err := NewConfig(Config{ConfigPath: filepath.Join(t.TempDir(), "nope.hcl")})
		require.NoError(t, err)

		_, err = NewApp(&out, &out, config)
		assert.ErrorContains(t, err, "failed to load workspace configuration")
	})
}

func TestRunList(t *testing.T) {
	a, out := newTestApp(t, writeWorkspace(t))
	require.NoError(t, a.Run(context.Background(), &Command{Kind: CommandList}))
	assert.Equal(t, "core\napi\ndocs\nui\napp\n", out.String())
}

func TestRunLint(t *testing.T) {
	t.Run("clean workspace reports no conflicts", func(t *testing.T) {
		a, out := newTestApp(t, writeWorkspace(t))
		require.NoError(t, a.Run(context.Background(), &Command{Kind: CommandLint}))
		assert.Contains(t, out.String(), "No dependency version conflicts found.")
	})
}

func TestRunGraph(t *testing.T) {
	a, out := newTestApp(t, writeWorkspace(t))
	target := filepath.Join(t.TempDir(), "deps.dot")
	require.NoError(t, a.Run(context.Background(), &Command{
		Kind:  CommandGraph,
		Graph: GraphOptions{Output: target},
	}))

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"app" -> "api";`)
	assert.Contains(t, out.String(), "Wrote dependency graph to "+target)
}

func TestRunIterate(t *testing.T) {
	t.Run("runs the task in every subproject in order", func(t *testing.T) {
		a, out := newTestApp(t, writeWorkspace(t))
		err := a.Run(context.Background(), &Command{
			Kind:    CommandIterate,
			Iterate: iterate.Options{Task: "true"},
		})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "[1/5] core")
		assert.Contains(t, out.String(), "[5/5] app")
	})

	t.Run("failing task halts with a resume directive", func(t *testing.T) {
		a, out := newTestApp(t, writeWorkspace(t))
		err := a.Run(context.Background(), &Command{
			Kind:    CommandIterate,
			Iterate: iterate.Options{Task: "false"},
		})
		var taskErr *iterate.TaskFailure
		require.ErrorAs(t, err, &taskErr)
		assert.Equal(t, "core", taskErr.Unit)
		assert.Contains(t, out.String(), "subgrid iterate -start core false")
	})

	t.Run("unknown selector aborts before any task runs", func(t *testing.T) {
		a, _ := newTestApp(t, writeWorkspace(t))
		err := a.Run(context.Background(), &Command{
			Kind:    CommandIterate,
			Iterate: iterate.Options{Task: "true", Select: "nope"},
		})
		require.Error(t, err)
		assert.False(t, errors.As(err, new(*iterate.TaskFailure)))
	})
}
