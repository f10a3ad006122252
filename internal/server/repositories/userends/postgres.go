package userends

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/dmitrijs2005/feedmedia/internal/dbx"
	"github.com/dmitrijs2005/feedmedia/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string) (*models.UserEnd, error) {
	query :=
		`INSERT INTO userends (user_id)
		 VALUES ($1)
		 RETURNING id, created_at
		 `

	ue := &models.UserEnd{UserID: userID}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&ue.ID, &ue.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ue, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.UserEnd, error) {
	query :=
		`SELECT id, user_id, created_at FROM userends
		 WHERE id = $1
		 `

	ue := &models.UserEnd{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ue.ID, &ue.UserID, &ue.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ue, nil
}
