package client

import (
	"context"

	"github.com/dmitrijs2005/feedmedia/internal/client/models"
)

// AppClient talks to the application server: the first three stages of
// the upload workflow.
type AppClient interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, handle, password string) (string, error)
	// Elevate exchanges a session token for a userend-scoped token.
	Elevate(ctx context.Context, sessionToken string) (string, error)
	// RequestUploadURL asks for storage paths for fileName.
	RequestUploadURL(ctx context.Context, scopedToken, fileName string) (models.UploadTarget, error)
}

// BlobUploader pushes a local blob to an issued storage path. It always
// closes blob.
type BlobUploader interface {
	Upload(ctx context.Context, filePath string, blob *models.FileBlob) (*models.UploadResult, error)
}
