package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Database.Path, cfg.Database.Path)
	assert.Equal(t, "classic", cfg.Invoice.DefaultTemplate)
	assert.Equal(t, "pdf", cfg.Export.DefaultFormat)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8088", cfg.Server.Addr)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Business.Name = "Acme Studio"
	cfg.Business.Email = "billing@acme.test"
	cfg.Invoice.DefaultTemplate = "modern"
	cfg.Export.DefaultFormat = "html"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme Studio", loaded.Business.Name)
	assert.Equal(t, "billing@acme.test", loaded.Business.Email)
	assert.Equal(t, "modern", loaded.Invoice.DefaultTemplate)
	assert.Equal(t, "html", loaded.Export.DefaultFormat)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0644))

	t.Setenv("QUICKINVOICE_LOG_LEVEL", "debug")
	t.Setenv("QUICKINVOICE_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(root, "db", "store.db")
	cfg.Export.OutputDir = filepath.Join(root, "out")
	cfg.Log.File = filepath.Join(root, "logs", "app.log")

	require.NoError(t, cfg.EnsureDirectories())

	for _, dir := range []string{"db", "out", "logs"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
