package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "students.db", cfg.StoragePath)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPServer.Addr)
	assert.NotEmpty(t, cfg.SecretKey)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("HTTP_SERVER_ADDR", "127.0.0.1:9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	yaml := "env: staging\nstorage_path: /tmp/registry.db\nsecret_key: s3cr3t\nhttp_server:\n  address: localhost:8082\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "/tmp/registry.db", cfg.StoragePath)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, "localhost:8082", cfg.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage_path: from-file.db\n"), 0o644))
	t.Setenv("STORAGE_PATH", "from-env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.StoragePath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
