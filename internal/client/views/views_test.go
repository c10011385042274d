package views

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/communityhub/internal/client/client/clienttest"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/dmitrijs2005/communityhub/internal/client/services"
)

type fakeSession struct {
	user   *models.User
	header string

	loginErr  error
	signupErr error
	deleteErr error

	calls []string
}

func (s *fakeSession) User() *models.User { return s.user }
func (s *fakeSession) AuthHeader() string { return s.header }

func (s *fakeSession) Login(_ context.Context, username string, _ []byte) error {
	s.calls = append(s.calls, "Login")
	if s.loginErr != nil {
		return s.loginErr
	}
	s.user = &models.User{Username: username}
	s.header = "Basic x"
	return nil
}

func (s *fakeSession) Signup(context.Context, string, []byte) error {
	s.calls = append(s.calls, "Signup")
	return s.signupErr
}

func (s *fakeSession) Logout(context.Context) {
	s.calls = append(s.calls, "Logout")
	s.user, s.header = nil, ""
}

func (s *fakeSession) DeleteAccount(context.Context) error {
	s.calls = append(s.calls, "DeleteAccount")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.user, s.header = nil, ""
	return nil
}

func signedIn(name string, admin bool) *fakeSession {
	return &fakeSession{user: &models.User{Username: name, IsAdmin: admin}, header: "Basic " + name}
}

type recorder struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (r *recorder) Emit(t notify.Type, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, notify.Notification{Type: t, Message: msg})
}

func (r *recorder) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.seen...)
}

func newDeps(t *testing.T, s *fakeSession, fc *clienttest.Fake) (Deps, *recorder) {
	t.Helper()
	rec := &recorder{}
	return Deps{
		Session: s,
		Posts:   services.NewPostService(fc, s),
		Admin:   services.NewAdminService(fc, s),
		Notify:  rec,
	}, rec
}
