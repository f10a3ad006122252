// Package config loads runtime configuration for the uploader.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: SGL_SERVER_URL and SGL_STORAGE_URL, optionally from a
//     .env file in the working directory.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "storage_url": "http://localhost:9000",
//	  "handle": "stant",
//	  "request_timeout": "30s",
//	  "thumbnail": true,
//	  "thumbnail_size": 300
//	}
//
// request_timeout is a timex.Duration, so "30s" and integer nanoseconds both
// work.
package config
