// Package services contains application services for the CommunityHub client.
// This file defines the session store: login, signup, logout, account
// deletion and restoring the persisted session at start-up.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/dmitrijs2005/communityhub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/dbx"
	"github.com/dmitrijs2005/communityhub/internal/logging"
)

var (
	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrRejected means the backend answered without an error status but
	// reported success=false.
	ErrRejected = errors.New("request rejected")
)

// AuthService holds the signed-in identity and its credential header.
//
// Contract:
//   - Login: verify credentials with the backend, keep and persist the session.
//   - Signup: register an account; does not sign in.
//   - Logout: forget the session; never fails.
//   - DeleteAccount: delete the signed-in account, then Logout.
//   - Restore: load the persisted session, discarding malformed data.
//
// Every outcome is reported to the user through the notification bus; the
// returned error is for control flow only. IsLoading is true while Restore,
// Login, Signup or DeleteAccount runs, and WaitIdle blocks until it is false.
type AuthService interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, username string, password []byte) error
	Signup(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error

	User() *models.User
	AuthHeader() string
	IsLoading() bool
	WaitIdle(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	bus    notify.Emitter
	logger logging.Logger

	mu         sync.Mutex
	user       *models.User
	authHeader string
	pending    int
	idle       chan struct{}
}

// NewAuthService constructs an AuthService bound to the API client, the local
// database and the notification bus. The session starts empty; call Restore
// to load a persisted one.
func NewAuthService(c client.Client, db *sql.DB, bus notify.Emitter, logger logging.Logger) AuthService {
	idle := make(chan struct{})
	close(idle)
	return &authService{
		client: c,
		db:     db,
		bus:    bus,
		logger: logger.With("module", "session"),
		idle:   idle,
	}
}

// begin marks an operation as running and returns the function ending it.
func (a *authService) begin() func() {
	a.mu.Lock()
	if a.pending == 0 {
		a.idle = make(chan struct{})
	}
	a.pending++
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		a.pending--
		if a.pending == 0 {
			close(a.idle)
		}
		a.mu.Unlock()
	}
}

func (a *authService) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending > 0
}

func (a *authService) WaitIdle(ctx context.Context) error {
	a.mu.Lock()
	idle := a.idle
	a.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *authService) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *authService) AuthHeader() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authHeader
}

func (a *authService) setSession(user *models.User, header string) {
	a.mu.Lock()
	a.user = user
	a.authHeader = header
	a.mu.Unlock()
}

func (a *authService) Restore(ctx context.Context) {
	defer a.begin()()

	var (
		user   models.User
		header []byte
	)
	repo := metadata.NewSQLiteRepository(a.db)

	userFound, err := metadata.GetJSON(ctx, repo, common.StorageKeyUser, &user)
	if err == nil {
		header, err = repo.Get(ctx, common.StorageKeyAuthHeader)
	}

	switch {
	case err != nil:
		a.logger.Warn(ctx, "discarding stored session", "error", err)
		a.clearStorage(ctx)
		return
	case !userFound && header == nil:
		return
	case !userFound || len(header) == 0 || user.Username == "":
		a.logger.Warn(ctx, "discarding incomplete stored session")
		a.clearStorage(ctx)
		return
	}

	a.setSession(&user, string(header))
	a.logger.Info(ctx, "session restored", "username", user.Username)
}

func (a *authService) persist(ctx context.Context, user *models.User, header string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := metadata.SetJSON(ctx, repo, common.StorageKeyUser, user); err != nil {
			return err
		}
		return repo.Set(ctx, common.StorageKeyAuthHeader, []byte(header))
	})
}

func (a *authService) clearStorage(ctx context.Context) {
	repo := metadata.NewSQLiteRepository(a.db)
	if err := repo.Delete(ctx, common.StorageKeyUser, common.StorageKeyAuthHeader); err != nil {
		a.logger.Error(ctx, "failed to clear stored session", "error", err)
	}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	defer a.begin()()

	header := common.BasicAuthHeader(username, password)

	res, err := a.client.Login(ctx, header)
	if err != nil {
		a.logger.Error(ctx, "login failed", "username", username, "error", err)
		a.bus.Emit(notify.Error, messageOr(err, "Login failed. An unexpected error occurred."))
		return fmt.Errorf("login: %w", err)
	}
	if !res.Success || res.User == nil {
		a.bus.Emit(notify.Error, "Login failed. Please check your credentials.")
		return fmt.Errorf("login: %w", ErrRejected)
	}

	user := *res.User
	a.setSession(&user, header)
	if err := a.persist(ctx, &user, header); err != nil {
		a.logger.Error(ctx, "failed to persist session", "error", err)
	}

	a.bus.Emit(notify.Success, fmt.Sprintf("Welcome back, %s!", user.Username))
	return nil
}

func (a *authService) Signup(ctx context.Context, username string, password []byte) error {
	defer a.begin()()

	res, err := a.client.Signup(ctx, username, password)
	if err != nil {
		a.logger.Error(ctx, "signup failed", "username", username, "error", err)
		a.bus.Emit(notify.Error, messageOr(err, "Signup failed. An unexpected error occurred."))
		return fmt.Errorf("signup: %w", err)
	}
	if !res.Success {
		a.bus.Emit(notify.Error, "Signup failed. Please try again.")
		return fmt.Errorf("signup: %w", ErrRejected)
	}

	name := res.Username
	if name == "" {
		name = username
	}
	a.bus.Emit(notify.Success, fmt.Sprintf("User %s registered successfully! Please log in.", name))
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.setSession(nil, "")
	a.clearStorage(ctx)
	a.bus.Emit(notify.Info, "You have been logged out.")
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	header := a.AuthHeader()
	if header == "" {
		a.bus.Emit(notify.Error, "You are not logged in.")
		return ErrNotLoggedIn
	}

	end := a.begin()
	err := a.client.DeleteMyAccount(ctx, header)
	end()

	if err != nil {
		a.logger.Error(ctx, "account deletion failed", "error", err)
		a.bus.Emit(notify.Error, messageOr(err, "Failed to delete account."))
		return fmt.Errorf("delete account: %w", err)
	}

	a.bus.Emit(notify.Success, "Your account has been deleted.")
	a.Logout(ctx)
	return nil
}

func messageOr(err error, fallback string) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return fallback
}
