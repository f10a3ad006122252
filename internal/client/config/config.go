package config

import "time"

// Config holds runtime settings for the uploader.
type Config struct {
	ServerURL  string
	StorageURL string

	Handle   string
	Password string

	FilePath    string
	ContentType string

	RequestTimeout time.Duration

	Thumbnail     bool
	ThumbnailSize int

	ContinueOnUploadError bool
	Verbose               bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.StorageURL = "http://localhost:9000"
	c.RequestTimeout = 30 * time.Second
	c.ThumbnailSize = 300
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
