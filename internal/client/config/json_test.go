package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_url":            "http://www.example:9000",
		"online_check_interval": "10s",
		"request_timeout":       int64(2 * time.Second),
		"debug":                 true,
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{APIPrefix: "/api/v1"}
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "/api/v1", cfg.APIPrefix, "absent keys keep their value")
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://defaults:1234"}
		require.NoError(t, parseJSON(cfg, []string{"docs"}))
		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})
}
