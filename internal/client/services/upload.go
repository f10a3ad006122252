// Package services contains the application services of the uploader.
// UploadService runs the authenticate → elevate → request target → upload
// chain for one local file.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/feedmedia/internal/client/client"
	"github.com/dmitrijs2005/feedmedia/internal/client/models"
	"github.com/dmitrijs2005/feedmedia/internal/logging"
)

// ErrThumbnail is returned when the thumbnail could not be rendered.
var ErrThumbnail = errors.New("thumbnail failed")

// ThumbnailRenderer turns an image into JPEG bytes whose longer side is at
// most maxSide.
type ThumbnailRenderer func(r io.Reader, maxSide int) ([]byte, error)

// openBlob is a seam for tests.
var openBlob = models.OpenFileBlob

// Options tune a single run.
type Options struct {
	// ContentType overrides detection when non-empty.
	ContentType string
	// Thumbnail is nil when no thumbnail should be produced.
	Thumbnail     ThumbnailRenderer
	ThumbnailSize int
}

// UploadService runs the upload workflow.
//
// Run returns a Report describing how far the workflow got together with the
// first error. On an upload failure Report.Upload carries the storage answer
// when there was one.
type UploadService interface {
	Run(ctx context.Context, creds models.Credentials, localPath string) (*models.Report, error)
}

type uploadService struct {
	app   client.AppClient
	store client.BlobUploader
	log   logging.Logger
	opts  Options
}

// NewUploadService wires the stage clients together.
func NewUploadService(app client.AppClient, store client.BlobUploader, log logging.Logger, opts Options) UploadService {
	return &uploadService{app: app, store: store, log: log, opts: opts}
}

func (s *uploadService) Run(ctx context.Context, creds models.Credentials, localPath string) (*models.Report, error) {
	log := s.log.With("file", localPath)

	// The file is opened before any network call so a bad path costs nothing.
	blob, err := openBlob(localPath, s.opts.ContentType)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer blob.Close()

	log.Debug(ctx, "file opened", "name", blob.Name, "content_type", blob.ContentType, "size", blob.Size)

	session, err := s.app.Login(ctx, creds.Handle, creds.Password)
	if err != nil {
		log.Error(ctx, "login failed", "handle", creds.Handle, "error", err)
		return nil, err
	}
	log.Info(ctx, "logged in", "handle", creds.Handle)

	scoped, err := s.app.Elevate(ctx, session)
	if err != nil {
		log.Error(ctx, "userend failed", "error", err)
		return nil, err
	}
	log.Info(ctx, "userend token issued")

	target, err := s.app.RequestUploadURL(ctx, scoped, blob.Name)
	if err != nil {
		log.Error(ctx, "upload url request failed", "error", err)
		return nil, err
	}
	log.Info(ctx, "upload target issued", "file_path", pathOnly(target.FilePath), "thumbnail_path", pathOnly(target.ThumbnailPath))

	report := &models.Report{Target: target}

	res, err := s.store.Upload(ctx, target.FilePath, blob)
	report.Upload = res
	if err != nil {
		log.Error(ctx, "upload failed", "error", err)
		return report, err
	}
	log.Info(ctx, "uploaded", "status", res.StatusCode, "etag", res.ETag)

	if s.opts.Thumbnail == nil {
		return report, nil
	}
	if !strings.HasPrefix(blob.ContentType, "image/") {
		log.Debug(ctx, "thumbnail skipped", "content_type", blob.ContentType)
		return report, nil
	}

	thumb, err := s.uploadThumbnail(ctx, localPath, target.ThumbnailPath)
	report.Thumbnail = thumb
	if err != nil {
		log.Error(ctx, "thumbnail failed", "error", err)
		return report, err
	}
	log.Info(ctx, "thumbnail uploaded", "status", thumb.StatusCode)

	return report, nil
}

func (s *uploadService) uploadThumbnail(ctx context.Context, localPath, thumbnailPath string) (*models.UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnail, err)
	}
	b, err := s.opts.Thumbnail(f, s.opts.ThumbnailSize)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnail, err)
	}

	return s.store.Upload(ctx, thumbnailPath, &models.FileBlob{
		Name:        "thumbnail.jpg",
		ContentType: "image/jpeg",
		Size:        int64(len(b)),
		Content:     io.NopCloser(bytes.NewReader(b)),
	})
}

// pathOnly drops the presigned query so signatures stay out of the logs.
func pathOnly(p string) string {
	before, _, _ := strings.Cut(p, "?")
	return before
}
