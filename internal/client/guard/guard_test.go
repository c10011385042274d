package guard

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	user *models.User
	idle chan struct{}
}

func (f *fakeSession) User() *models.User { return f.user }

func (f *fakeSession) WaitIdle(ctx context.Context) error {
	if f.idle == nil {
		return nil
	}
	select {
	case <-f.idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()

	d, err := RequireAuth(ctx, &fakeSession{}, "/my-page")
	require.NoError(t, err)
	assert.Equal(t, Decision{Redirect: "/login", From: "/my-page"}, d)

	d, err = RequireAuth(ctx, &fakeSession{user: &models.User{Username: "bob"}}, "/my-page")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()

	d, err := RequireAdmin(ctx, &fakeSession{}, "/admin/users")
	require.NoError(t, err)
	assert.Equal(t, Decision{Redirect: "/login", From: "/admin/users"}, d)

	d, err = RequireAdmin(ctx, &fakeSession{user: &models.User{Username: "bob"}}, "/admin/users")
	require.NoError(t, err)
	assert.Equal(t, Decision{Redirect: "/"}, d)

	d, err = RequireAdmin(ctx, &fakeSession{user: &models.User{Username: "admin", IsAdmin: true}}, "/admin/users")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestGuards_WaitForLoading(t *testing.T) {
	s := &fakeSession{idle: make(chan struct{})}

	done := make(chan Decision, 1)
	go func() {
		d, _ := RequireAuth(context.Background(), s, "/my-page")
		done <- d
	}()

	select {
	case <-done:
		t.Fatal("guard decided while the session was loading")
	case <-time.After(20 * time.Millisecond):
	}

	s.user = &models.User{Username: "alice"}
	close(s.idle)

	assert.True(t, (<-done).Allowed)
}

func TestGuards_ContextCancelled(t *testing.T) {
	s := &fakeSession{idle: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RequireAdmin(ctx, s, "/admin/users")
	require.ErrorIs(t, err, context.Canceled)
}
