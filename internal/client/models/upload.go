// Package models defines the values passed between the upload stages.
package models

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/feedmedia/internal/filex"
)

// Credentials identify the user on the application server. They are never
// persisted.
type Credentials struct {
	Handle   string
	Password string
}

// UploadTarget is the pair of storage paths issued for one file. FilePath
// receives the media; ThumbnailPath is left to a thumbnail producer.
type UploadTarget struct {
	FilePath      string `json:"filePath"`
	ThumbnailPath string `json:"thumbnailPath"`
}

// FileBlob is a local file opened for a single streaming upload.
type FileBlob struct {
	// Name is the base name sent to the server when requesting a target.
	Name string
	// ContentType is sent verbatim as the Content-Type header.
	ContentType string
	// Size is sent as Content-Length and must match what Content yields.
	Size int64
	// Content is consumed and closed by the uploader.
	Content io.ReadCloser
}

// Close releases the underlying file.
func (b *FileBlob) Close() error {
	if b == nil || b.Content == nil {
		return nil
	}
	return b.Content.Close()
}

// OpenFileBlob opens path and describes it. An empty contentType is detected
// from the file name and content.
func OpenFileBlob(path, contentType string) (*FileBlob, error) {
	f, size, err := filex.OpenRegular(path)
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType, err = filex.DetectContentType(path, f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("content type: %w", err)
		}
	}

	return &FileBlob{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        size,
		Content:     f,
	}, nil
}

// UploadResult is the object store's answer to a PUT, surfaced unparsed.
type UploadResult struct {
	StatusCode int
	Status     string
	ETag       string
	Body       []byte
}

// Report summarises one workflow run. Thumbnail is nil when no thumbnail
// was produced.
type Report struct {
	Target    UploadTarget
	Upload    *UploadResult
	Thumbnail *UploadResult
}
