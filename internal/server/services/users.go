package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/dmitrijs2005/feedmedia/internal/dbx"
	"github.com/dmitrijs2005/feedmedia/internal/server/auth"
	"github.com/dmitrijs2005/feedmedia/internal/server/config"
	"github.com/dmitrijs2005/feedmedia/internal/server/models"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is lowered in tests.
var passwordHashCost = bcrypt.DefaultCost

var ErrInvalidSeed = errors.New(`seed user must be "handle:password"`)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// NormalizeHandle lower-cases h and removes all white space, which is how
// nicknames are stored.
func NormalizeHandle(h string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, h)
}

// Login verifies the password and returns a session token. Unknown users
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, handle, password string) (string, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByNickname(ctx, NormalizeHandle(handle))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// CreateUserEnd registers a new userend for userID and returns it with a
// scoped token bound to it.
func (s *UserService) CreateUserEnd(ctx context.Context, userID string) (*models.UserEnd, string, error) {

	ue, err := s.repomanager.UserEnds(s.db).Create(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("error creating userend: %w", err)
	}

	token, err := auth.GenerateUserEndToken(userID, ue.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return ue, token, nil
}

// SeedUser creates the user described by seed ("handle:password") unless a
// user with that handle already exists. created reports whether a row was
// inserted.
func (s *UserService) SeedUser(ctx context.Context, seed string) (user *models.User, created bool, err error) {
	handle, password, ok := strings.Cut(seed, ":")
	handle = NormalizeHandle(handle)
	if !ok || handle == "" || password == "" {
		return nil, false, ErrInvalidSeed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.GetUserByNickname(ctx, handle)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, &models.User{Nickname: handle, PasswordHash: hash})
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("error seeding user: %w", err)
	}

	return user, created, nil
}
