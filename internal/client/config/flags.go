package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/feedmedia/internal/flagx"
)

var (
	valueFlags = []string{"-s", "-o", "-u", "-p", "-f", "-t", "-r", "-thumbnail-size"}
	boolFlags  = []string{"-thumbnail", "-continue-on-upload-error", "-v"}
)

// parseFlags populates Config from command-line flags.
//
//	-s string   application server base URL
//	-o string   object storage base URL
//	-u string   user handle
//	-p string   password (prompted for when empty)
//	-f string   file to upload
//	-t string   content type (detected when empty)
//	-r int      request timeout in seconds
//	-thumbnail                 render and upload a thumbnail
//	-thumbnail-size int        longest thumbnail side in pixels
//	-continue-on-upload-error  report upload failures but exit 0
//	-v                         verbose logging
//
// os.Args is filtered with flagx.FilterArgs so -c/-config do not reach the
// flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], valueFlags, boolFlags...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "application server base URL")
	fs.StringVar(&cfg.StorageURL, "o", cfg.StorageURL, "object storage base URL")
	fs.StringVar(&cfg.Handle, "u", cfg.Handle, "user handle")
	fs.StringVar(&cfg.Password, "p", cfg.Password, "password")
	fs.StringVar(&cfg.FilePath, "f", cfg.FilePath, "file to upload")
	fs.StringVar(&cfg.ContentType, "t", cfg.ContentType, "content type")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Thumbnail, "thumbnail", cfg.Thumbnail, "render and upload a thumbnail")
	fs.IntVar(&cfg.ThumbnailSize, "thumbnail-size", cfg.ThumbnailSize, "longest thumbnail side in pixels")
	fs.BoolVar(&cfg.ContinueOnUploadError, "continue-on-upload-error", cfg.ContinueOnUploadError, "report upload failures but exit 0")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -r only overrides when given, so sub-second JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "r" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
