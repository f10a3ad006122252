package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL  = "SGL_SERVER_URL"
	EnvStorageURL = "SGL_STORAGE_URL"
)

// dotenvFiles are loaded before the environment is read. Variables already
// set in the process environment win.
var dotenvFiles = []string{".env"}

// parseEnv overlays the base URLs from the environment. A missing .env file
// is not an error; a malformed one panics.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvStorageURL); v != "" {
		cfg.StorageURL = v
	}
}
