package users

import (
	"context"

	"github.com/dmitrijs2005/feedmedia/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByNickname(ctx context.Context, nickname string) (*models.User, error)
}
