package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/feedmedia/internal/client/models"
	"github.com/dmitrijs2005/feedmedia/internal/netx"
)

// putPresigned is a seam for tests.
var putPresigned = netx.PutPresigned

// StorageClient implements BlobUploader against an S3-compatible store.
type StorageClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStorageClient validates storageURL and binds it to httpClient.
func NewStorageClient(storageURL string, httpClient *http.Client) (*StorageClient, error) {
	base, err := parseBaseURL(storageURL)
	if err != nil {
		return nil, fmt.Errorf("storage url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StorageClient{baseURL: base, httpClient: httpClient}, nil
}

// Upload streams blob to filePath. filePath is the path (and query) issued
// by the server and is appended to the storage base URL; an absolute URL is
// used as is. The blob is closed before Upload returns.
func (s *StorageClient) Upload(ctx context.Context, filePath string, blob *models.FileBlob) (*models.UploadResult, error) {
	defer blob.Close()

	if blob == nil || blob.Content == nil {
		return nil, fmt.Errorf("%w: nothing to upload", ErrUpload)
	}

	target, err := s.resolve(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	resp, err := putPresigned(ctx, s.httpClient, target, blob.Content, blob.Size, blob.ContentType)
	if err != nil {
		if resp != nil && errors.Is(err, netx.ErrUnexpectedStatus) {
			return toResult(resp), &StatusError{
				Kind:       ErrUpload,
				Op:         "put",
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(resp.Body)),
			}
		}
		return nil, unavailable(ErrUpload, "put", err)
	}

	return toResult(resp), nil
}

func (s *StorageClient) resolve(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("empty file path")
	}
	if u, err := url.Parse(filePath); err == nil && u.IsAbs() {
		return filePath, nil
	}
	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + filePath
	}
	return s.baseURL + filePath, nil
}

func toResult(r *netx.PutResponse) *models.UploadResult {
	return &models.UploadResult{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		ETag:       r.ETag,
		Body:       r.Body,
	}
}
