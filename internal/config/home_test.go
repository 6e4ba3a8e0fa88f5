package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSalvageHome(t *testing.T) {
	t.Run("env var", func(t *testing.T) {
		custom := t.TempDir()
		t.Setenv(HomeEnv, custom)

		home, err := GetSalvageHome()
		require.NoError(t, err)
		assert.Equal(t, custom, home)
	})

	t.Run("user home", func(t *testing.T) {
		userHome := t.TempDir()
		t.Setenv(HomeEnv, "")
		t.Setenv("HOME", userHome)

		home, err := GetSalvageHome()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, ".salvage"), home)
	})
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	t.Run("defaults", func(t *testing.T) {
		cfg, source, err := Resolve("", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, source)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("home file", func(t *testing.T) {
		path := filepath.Join(home, FileName)
		writeConfig(t, path, "columns_width: 100\n")
		defer os.Remove(path)

		cfg, source, err := Resolve("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, path, source)
		assert.Equal(t, 100, cfg.ColumnsWidth)
	})

	t.Run("project file wins over home", func(t *testing.T) {
		homePath := filepath.Join(home, FileName)
		writeConfig(t, homePath, "columns_width: 100\n")
		defer os.Remove(homePath)

		project := t.TempDir()
		projectPath := filepath.Join(project, DirName, FileName)
		writeConfig(t, projectPath, "columns_width: 60\n")

		cfg, source, err := Resolve("", project)
		require.NoError(t, err)
		assert.Equal(t, projectPath, source)
		assert.Equal(t, 60, cfg.ColumnsWidth)
	})

	t.Run("explicit wins", func(t *testing.T) {
		explicit := filepath.Join(t.TempDir(), "custom.yaml")
		writeConfig(t, explicit, "deleted_marker: \"#\"\n")

		cfg, source, err := Resolve(explicit, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, explicit, source)
		assert.Equal(t, "#", cfg.DeletedMarker)
	})

	t.Run("explicit missing is an error", func(t *testing.T) {
		_, _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
