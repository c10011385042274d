// Package guard decides whether a navigation may proceed given the current
// session. Both guards first wait for any in-flight session operation, so a
// start-up restore or a login in progress is never mistaken for "signed out".
package guard

import (
	"context"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Session is the view of the session store the guards need.
type Session interface {
	User() *models.User
	WaitIdle(ctx context.Context) error
}

// Decision is the outcome of a guard. When Allowed is false the caller should
// go to Redirect; From carries the refused destination when the user is sent
// to log in, so the login form can return there.
type Decision struct {
	Allowed  bool
	Redirect string
	From     string
}

func allow() Decision {
	return Decision{Allowed: true}
}

// RequireAuth lets signed-in users through and sends everyone else to the
// login page.
func RequireAuth(ctx context.Context, s Session, path string) (Decision, error) {
	if err := s.WaitIdle(ctx); err != nil {
		return Decision{}, err
	}
	if s.User() == nil {
		return Decision{Redirect: LoginPath, From: path}, nil
	}
	return allow(), nil
}

// RequireAdmin is RequireAuth plus a redirect home for non-admins.
func RequireAdmin(ctx context.Context, s Session, path string) (Decision, error) {
	d, err := RequireAuth(ctx, s, path)
	if err != nil || !d.Allowed {
		return d, err
	}
	if u := s.User(); u == nil || !u.IsAdmin {
		return Decision{Redirect: HomePath}, nil
	}
	return allow(), nil
}
