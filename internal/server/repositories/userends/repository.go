package userends

import (
	"context"

	"github.com/dmitrijs2005/feedmedia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string) (*models.UserEnd, error)
	Get(ctx context.Context, id string) (*models.UserEnd, error)
}
