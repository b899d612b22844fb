package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConsoleConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConsoleConfig(NewConsoleViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9002", cfg.APIURL)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.OrphanSweepInterval)
	assert.Equal(t, cfg.APIURL, cfg.ImageBase())
}

func TestLoadConsoleConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pizza-console.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
api_url: http://backend:9002
port: 8181
public_image_base: https://cdn.example.com
orphan_sweep_interval: 30s
`), 0o600))
	t.Setenv("PIZZA_CONSOLE_PORT", "9191")

	cfg, err := LoadConsoleConfig(NewConsoleViper(), file)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9002", cfg.APIURL)
	assert.Equal(t, 9191, cfg.Port, "environment overrides the file")
	assert.Equal(t, 30*time.Second, cfg.OrphanSweepInterval)
	assert.Equal(t, "https://cdn.example.com", cfg.ImageBase())
}

func TestLoadConsoleConfigRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "relative api url", key: "PIZZA_CONSOLE_API_URL", val: "backend:9002"},
		{name: "port out of range", key: "PIZZA_CONSOLE_PORT", val: "70000"},
		{name: "negative sweep", key: "PIZZA_CONSOLE_ORPHAN_SWEEP_INTERVAL", val: "-1m"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := LoadConsoleConfig(NewConsoleViper(), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadConsoleConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConsoleConfig(NewConsoleViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
