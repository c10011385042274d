// Package views implements the CommunityHub screens on top of the client
// services: each view loads what it shows, renders itself as text and turns
// user actions into service calls plus notifications.
//
// Actions that move the user elsewhere return a Nav with the destination
// path; an empty Nav means "stay". Every failed action emits exactly one
// error notification and, where a form is involved, sets an inline error.
package views

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/dmitrijs2005/communityhub/internal/client/services"
)

// Nav is a destination path produced by an action.
type Nav string

const Stay Nav = ""

var (
	// ErrPermission is returned when the signed-in user may not perform an
	// action. No request is made.
	ErrPermission = errors.New("permission denied")

	// ErrInvalidInput is returned when local validation fails. No request is
	// made.
	ErrInvalidInput = errors.New("invalid input")
)

// Session is the part of the session store the views use.
type Session interface {
	User() *models.User
	AuthHeader() string
	Login(ctx context.Context, username string, password []byte) error
	Signup(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error
}

type Deps struct {
	Session Session
	Posts   services.PostService
	Admin   services.AdminService
	Notify  notify.Emitter
}

// errorText is the message shown for a failed remote action.
func errorText(err error, fallback string) string {
	if errors.Is(err, services.ErrNotLoggedIn) {
		return "You are not logged in."
	}
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return fallback
}

func (d Deps) fail(err error, fallback string) string {
	msg := errorText(err, fallback)
	d.Notify.Emit(notify.Error, msg)
	return msg
}

// canModify reports whether user may delete content written by author.
func canModify(user *models.User, author string) bool {
	return user != nil && (user.IsAdmin || user.Username == author)
}
