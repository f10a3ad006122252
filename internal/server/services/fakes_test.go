package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/dmitrijs2005/feedmedia/internal/dbx"
	"github.com/dmitrijs2005/feedmedia/internal/server/models"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/userends"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byNickname map[string]*models.User
	getErr     error
	createErr  error
	created    []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "new-id"
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byNickname[nickname]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeUserEndsRepo struct {
	byID      map[string]*models.UserEnd
	getErr    error
	createErr error
	created   []string
}

func (f *fakeUserEndsRepo) Create(ctx context.Context, userID string) (*models.UserEnd, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, userID)
	return &models.UserEnd{ID: "ue-1", UserID: userID}, nil
}

func (f *fakeUserEndsRepo) Get(ctx context.Context, id string) (*models.UserEnd, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	ue, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return ue, nil
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	userEnds *fakeUserEndsRepo
	migErr   error
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return m.migErr }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) UserEnds(dbx.DBTX) userends.Repository { return m.userEnds }
