package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDotenv(t *testing.T, files ...string) {
	t.Helper()
	orig := dotenvFiles
	t.Cleanup(func() { dotenvFiles = orig })
	dotenvFiles = files
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func Test_parseEnv(t *testing.T) {
	t.Run("process environment", func(t *testing.T) {
		withDotenv(t)
		t.Setenv(EnvServerURL, "http://api:8080")
		unsetEnv(t, EnvStorageURL)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://api:8080", cfg.ServerURL)
		assert.Equal(t, "http://localhost:9000", cfg.StorageURL)
	})

	t.Run("dotenv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SGL_SERVER_URL=http://dotenv:8080\nSGL_STORAGE_URL=http://dotenv:9000\n"), 0o600))
		withDotenv(t, path)
		unsetEnv(t, EnvServerURL)
		t.Setenv(EnvStorageURL, "http://process:9000")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "http://dotenv:8080", cfg.ServerURL)
		assert.Equal(t, "http://process:9000", cfg.StorageURL)
	})

	t.Run("missing dotenv file is ignored", func(t *testing.T) {
		withDotenv(t, filepath.Join(t.TempDir(), ".env"))
		unsetEnv(t, EnvServerURL)
		unsetEnv(t, EnvStorageURL)

		cfg := &Config{ServerURL: "http://keep"}
		require.NotPanics(t, func() { parseEnv(cfg) })
		assert.Equal(t, "http://keep", cfg.ServerURL)
	})
}
