package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRetriesAfterFailure(t *testing.T) {
	dir := t.TempDir()

	// a failed load must not be cached
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "data/lab.db", cfg.Database.Path)
	assert.Equal(t, 3, cfg.Directory.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Monitor.PollSeconds)

	assert.Same(t, cfg, Get())
}
