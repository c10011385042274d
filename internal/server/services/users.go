// Package services contains server-side business logic: account handling,
// posts with image attachments, and comments. Services own authorization
// decisions; the HTTP layer only resolves who is calling.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/dmitrijs2005/communityhub/internal/server/images"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	"github.com/dmitrijs2005/communityhub/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 4
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      images.Store
	logger      logging.Logger
	hashCost    int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, store images.Store, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		images:      store,
		logger:      logger.With("module", "users"),
		hashCost:    bcrypt.DefaultCost,
	}
}

// Signup registers a regular user.
func (s *UserService) Signup(ctx context.Context, username string, password []byte) (*models.User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, invalid("username", fmt.Sprintf("Username must be between %d and %d characters.", minUsernameLen, maxUsernameLen))
	}
	if len(password) < minPasswordLen {
		return nil, invalid("password", fmt.Sprintf("Password must be at least %d characters.", minPasswordLen))
	}

	return s.create(ctx, username, password, false)
}

func (s *UserService) create(ctx context.Context, username string, password []byte, admin bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Username: username, PasswordHash: hash, IsAdmin: admin})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, &Error{Kind: common.ErrorAlreadyExists, Field: "username", Msg: "Username already registered."}
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, username string, password []byte) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, password); err != nil {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// Delete removes the account together with its posts, comments and the
// images attached to its posts.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	keys, err := s.repomanager.Posts(s.db).ImagesByAuthor(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound("User not found.")
		}
		return err
	}

	for _, p := range keys {
		removeImage(ctx, s.images, s.logger, p)
	}
	return nil
}

// DeleteByAdmin is Delete on behalf of an administrator. The reserved admin
// account and the actor's own account are refused.
func (s *UserService) DeleteByAdmin(ctx context.Context, actor *models.User, id int64) error {
	if actor == nil || !actor.IsAdmin {
		return forbidden("Admin access required.")
	}
	if actor.ID == id {
		return forbidden("You cannot delete your own account from the admin page.")
	}

	target, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound("User not found.")
		}
		return err
	}
	if target.Username == common.ReservedAdminName {
		return forbidden("The 'admin' account cannot be deleted.")
	}

	return s.Delete(ctx, id)
}

// EnsureAdmin seeds the reserved administrator account when it is missing.
// An existing account is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, password []byte) error {
	_, err := s.repomanager.Users(s.db).GetByUsername(ctx, common.ReservedAdminName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	if len(password) == 0 {
		s.logger.Warn(ctx, "admin account missing and no admin password configured")
		return nil
	}

	if _, err := s.create(ctx, common.ReservedAdminName, password, true); err != nil {
		return err
	}
	s.logger.Info(ctx, "admin account created")
	return nil
}

func removeImage(ctx context.Context, store images.Store, logger logging.Logger, imagePath string) {
	key, ok := images.KeyFromPath(imagePath)
	if !ok {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		logger.Error(ctx, "image cleanup failed", "key", key, "error", err)
	}
}
