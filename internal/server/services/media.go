package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/dmitrijs2005/feedmedia/internal/server/models"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// newUUID is a seam for tests.
var newUUID = uuid.NewString

// Presigner issues presigned PUT request URIs.
type Presigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
}

type MediaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   Presigner
}

func NewMediaService(db *sql.DB, m repomanager.RepositoryManager, p Presigner) *MediaService {
	return &MediaService{db: db, repomanager: m, presigner: p}
}

// MediaKey picks the object key for fileName by its extension.
func MediaKey(fileName string) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg":
		return fmt.Sprintf("pictures-%s.jpg", newUUID()), nil
	case ".mp4":
		return fmt.Sprintf("videos-%s.mp4", newUUID()), nil
	default:
		return "", common.ErrUnknownFileType
	}
}

// ThumbnailKey returns a fresh key for a JPEG thumbnail.
func ThumbnailKey() string {
	return fmt.Sprintf("thumbnail-%s.jpg", newUUID())
}

// UploadURL issues the media and thumbnail upload targets for fileName. The
// userend must exist and belong to userID.
func (s *MediaService) UploadURL(ctx context.Context, userID, userEndID, fileName string) (*models.UploadTarget, error) {

	ue, err := s.repomanager.UserEnds(s.db).Get(ctx, userEndID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if ue.UserID != userID {
		return nil, common.ErrorUnauthorized
	}

	key, err := MediaKey(fileName)
	if err != nil {
		return nil, err
	}

	filePath, err := s.presigner.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error presigning media: %w", err)
	}

	thumbnailPath, err := s.presigner.PresignPut(ctx, ThumbnailKey())
	if err != nil {
		return nil, fmt.Errorf("error presigning thumbnail: %w", err)
	}

	return &models.UploadTarget{FilePath: filePath, ThumbnailPath: thumbnailPath}, nil
}
