package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/feedmedia/internal/flagx"
	"github.com/dmitrijs2005/feedmedia/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The password
// has no JSON field; it comes from -p or the prompt.
type JsonConfig struct {
	ServerURL             string         `json:"server_url"`
	StorageURL            string         `json:"storage_url"`
	Handle                string         `json:"handle"`
	ContentType           string         `json:"content_type"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	Thumbnail             *bool          `json:"thumbnail"`
	ThumbnailSize         int            `json:"thumbnail_size"`
	ContinueOnUploadError *bool          `json:"continue_on_upload_error"`
}

// parseJson overlays Config with the non-empty values of the JSON file named
// by -c or -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.StorageURL != "" {
		cfg.StorageURL = jc.StorageURL
	}
	if jc.Handle != "" {
		cfg.Handle = jc.Handle
	}
	if jc.ContentType != "" {
		cfg.ContentType = jc.ContentType
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Thumbnail != nil {
		cfg.Thumbnail = *jc.Thumbnail
	}
	if jc.ThumbnailSize > 0 {
		cfg.ThumbnailSize = jc.ThumbnailSize
	}
	if jc.ContinueOnUploadError != nil {
		cfg.ContinueOnUploadError = *jc.ContinueOnUploadError
	}
}
