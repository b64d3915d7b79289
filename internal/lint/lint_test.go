package lint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/subgrid/internal/project"
)

func addProject(t *testing.T, reg *project.Registry, name, version string, deps ...project.Dependency) {
	t.Helper()
	require.NoError(t, reg.Add(&project.Descriptor{
		Name:         name,
		Version:      version,
		Root:         "/src/" + name,
		Dependencies: deps,
	}))
}

func TestCheck(t *testing.T) {
	t.Run("agreeing declarations produce an empty report", func(t *testing.T) {
		reg := project.NewRegistry()
		addProject(t, reg, "a", "1.0", project.Dependency{Name: "lib", Version: "1.0"})
		addProject(t, reg, "b", "1.0", project.Dependency{Name: "lib", Version: "1.0"})

		report := Check(reg)
		assert.True(t, report.Empty())
	})

	t.Run("disagreeing external declarations are reported", func(t *testing.T) {
		reg := project.NewRegistry()
		addProject(t, reg, "A", "1.0", project.Dependency{Name: "lib", Version: "1.0"})
		addProject(t, reg, "B", "1.0", project.Dependency{Name: "lib", Version: "2.0"})

		report := Check(reg)
		require.Len(t, report.Entries, 1)
		entry := report.Entries[0]
		assert.Equal(t, "lib", entry.Dependency)
		assert.Equal(t, []string{"1.0", "2.0"}, entry.Versions)
		assert.Equal(t, []string{"A", "B"}, entry.DeclaredBy)
	})

	t.Run("internal declaration is checked against the target's own version", func(t *testing.T) {
		reg := project.NewRegistry()
		addProject(t, reg, "api", "1.0", project.Dependency{Name: "core", Version: "0.9"})
		addProject(t, reg, "core", "1.1")

		report := Check(reg)
		require.Len(t, report.Entries, 1)
		entry := report.Entries[0]
		assert.Equal(t, "core", entry.Dependency)
		assert.Equal(t, []string{"0.9", "1.1"}, entry.Versions)
		assert.Equal(t, []string{"api", "core"}, entry.DeclaredBy)
	})

	t.Run("internal declaration matching the target is no conflict", func(t *testing.T) {
		reg := project.NewRegistry()
		addProject(t, reg, "api", "1.0", project.Dependency{Name: "core", Version: "1.1"})
		addProject(t, reg, "core", "1.1")

		assert.True(t, Check(reg).Empty())
	})

	t.Run("report is deterministic", func(t *testing.T) {
		reg := project.NewRegistry()
		addProject(t, reg, "a", "1.0",
			project.Dependency{Name: "json", Version: "2.0"},
			project.Dependency{Name: "http", Version: "1.0"})
		addProject(t, reg, "b", "1.0",
			project.Dependency{Name: "json", Version: "3.0"},
			project.Dependency{Name: "http", Version: "1.1"})
		addProject(t, reg, "c", "1.0",
			project.Dependency{Name: "json", Version: "2.0"})

		first := Check(reg)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Check(reg))
		}

		require.Len(t, first.Entries, 2)
		assert.Equal(t, "http", first.Entries[0].Dependency)
		assert.Equal(t, "json", first.Entries[1].Dependency)
	})
}

func TestRender(t *testing.T) {
	reg := project.NewRegistry()
	addProject(t, reg, "A", "1.0", project.Dependency{Name: "lib", Version: "1.0"})
	addProject(t, reg, "B", "1.0", project.Dependency{Name: "lib", Version: "2.0"})

	var buf bytes.Buffer
	require.NoError(t, Check(reg).Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "DEPENDENCY")
	assert.Contains(t, out, "VERSIONS")
	assert.Contains(t, out, "DECLARED BY")
	assert.Contains(t, out, "lib")
	assert.Contains(t, out, "1.0, 2.0")
	assert.Contains(t, out, "A, B")
}
