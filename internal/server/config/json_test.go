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

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"database_dsn":                   "postgres://json",
		"secret_key":                     "my_secret_key",
		"encryption_key":                 "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		"access_token_validity_duration": "1m",
		"log_level":                      "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		setArgs(t, "-config", path)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://json", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", cfg.EncryptionKey)
		assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "error"})
		setArgs(t, "-c", partial)

		cfg := &Config{DatabaseDSN: "default", AccessTokenValidityDuration: 2 * time.Minute}
		parseJson(cfg)

		assert.Equal(t, "default", cfg.DatabaseDSN)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		setArgs(t)

		cfg := &Config{EndpointAddrGRPC: "defaults:1234", SecretKey: "key"}
		parseJson(cfg)

		assert.Equal(t, &Config{EndpointAddrGRPC: "defaults:1234", SecretKey: "key"}, cfg)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		setArgs(t, "-config", bad)

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		setArgs(t, "-c", filepath.Join(dir, "nope.json"))

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
