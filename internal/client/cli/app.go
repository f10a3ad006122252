package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/feedmedia/internal/client/client"
	"github.com/dmitrijs2005/feedmedia/internal/client/config"
	"github.com/dmitrijs2005/feedmedia/internal/client/models"
	"github.com/dmitrijs2005/feedmedia/internal/client/services"
	"github.com/dmitrijs2005/feedmedia/internal/client/thumbnail"
	"github.com/dmitrijs2005/feedmedia/internal/logging"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var ErrNoFile = errors.New("no file given, use -f")

type App struct {
	config *config.Config
	log    logging.Logger
	upload services.UploadService
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the stage clients from c. All network calls share one
// http.Client bounded by c.RequestTimeout.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	httpClient := &http.Client{Timeout: c.RequestTimeout}

	apiClient, err := client.NewHTTPClient(c.ServerURL, httpClient)
	if err != nil {
		return nil, err
	}
	storageClient, err := client.NewStorageClient(c.StorageURL, httpClient)
	if err != nil {
		return nil, err
	}

	opts := services.Options{ContentType: c.ContentType}
	if c.Thumbnail {
		opts.Thumbnail = thumbnail.Render
		opts.ThumbnailSize = c.ThumbnailSize
	}

	svc := services.NewUploadService(apiClient, storageClient, log, opts)
	return newApp(c, log, svc, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, svc services.UploadService, in io.Reader, out io.Writer) *App {
	return &App{config: c, log: log, upload: svc, reader: bufio.NewReader(in), out: out}
}

// Run uploads the configured file once and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	if a.config.FilePath == "" {
		a.log.Error(ctx, "invalid arguments", "error", ErrNoFile)
		return ExitUsage
	}

	creds, err := a.credentials()
	if err != nil {
		a.log.Error(ctx, "reading credentials", "error", err)
		return ExitUsage
	}

	report, err := a.upload.Run(ctx, creds, a.config.FilePath)
	if report != nil {
		printReport(a.out, report)
	}
	if err == nil {
		return ExitOK
	}

	if a.config.ContinueOnUploadError && errors.Is(err, client.ErrUpload) {
		a.log.Warn(ctx, "upload failed, continuing", "error", err)
		return ExitOK
	}
	return ExitFailure
}

func (a *App) credentials() (models.Credentials, error) {
	creds := models.Credentials{Handle: a.config.Handle, Password: a.config.Password}

	if creds.Handle == "" {
		h, err := GetSimpleText(a.reader, "Handle", a.out)
		if err != nil {
			return creds, err
		}
		creds.Handle = h
	}

	if creds.Password == "" {
		pw, err := GetPassword(a.out)
		if err != nil {
			return creds, err
		}
		creds.Password = string(pw)
	}

	return creds, nil
}

func printReport(w io.Writer, r *models.Report) {
	fmt.Fprintf(w, "file path:      %s\n", pathOnly(r.Target.FilePath))
	fmt.Fprintf(w, "thumbnail path: %s\n", pathOnly(r.Target.ThumbnailPath))
	if r.Upload != nil {
		fmt.Fprintf(w, "upload:         %d %s\n", r.Upload.StatusCode, r.Upload.ETag)
	}
	if r.Thumbnail != nil {
		fmt.Fprintf(w, "thumbnail:      %d %s\n", r.Thumbnail.StatusCode, r.Thumbnail.ETag)
	}
}
