package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/client/clienttest"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersFake() *clienttest.Fake {
	users := []models.AdminUser{
		{ID: 1, Username: "admin", IsAdmin: true},
		{ID: 2, Username: "root", IsAdmin: true},
		{ID: 3, Username: "bob"},
	}
	fc := &clienttest.Fake{}
	fc.ListUsersFn = func(string) ([]models.AdminUser, error) {
		return append([]models.AdminUser(nil), users...), nil
	}
	fc.DeleteUserFn = func(id int64, _ string) error {
		for i, u := range users {
			if u.ID == id {
				users = append(users[:i], users[i+1:]...)
			}
		}
		return nil
	}
	return fc
}

func loadedAdmin(t *testing.T, fc *clienttest.Fake) (*AdminUsers, *recorder) {
	t.Helper()
	d, rec := newDeps(t, signedIn("root", true), fc)
	v := NewAdminUsers(d)
	nav, err := v.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stay, nav)
	return v, rec
}

func TestAdminUsers_DeleteAdminBlocked(t *testing.T) {
	fc := usersFake()
	v, rec := loadedAdmin(t, fc)

	err := v.DeleteUser(context.Background(), 1)
	require.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, []string{"ListUsers"}, fc.Methods())
	assert.Equal(t, []notify.Notification{{Type: notify.Error, Message: "The 'admin' account cannot be deleted."}}, rec.all())
}

func TestAdminUsers_DeleteSelfBlocked(t *testing.T) {
	fc := usersFake()
	v, rec := loadedAdmin(t, fc)

	require.ErrorIs(t, v.DeleteUser(context.Background(), 2), ErrPermission)
	assert.Equal(t, []string{"ListUsers"}, fc.Methods())
	assert.Equal(t, "You cannot delete your own account from the admin panel.", rec.all()[0].Message)
}

func TestAdminUsers_DeleteUnknown(t *testing.T) {
	fc := usersFake()
	v, _ := loadedAdmin(t, fc)

	require.ErrorIs(t, v.DeleteUser(context.Background(), 42), ErrInvalidInput)
	assert.Equal(t, []string{"ListUsers"}, fc.Methods())
}

func TestAdminUsers_DeleteRefetches(t *testing.T) {
	fc := usersFake()
	v, rec := loadedAdmin(t, fc)

	require.NoError(t, v.DeleteUser(context.Background(), 3))
	assert.Equal(t, []string{"ListUsers", "DeleteUser", "ListUsers"}, fc.Methods())
	assert.Len(t, v.Users(), 2)
	assert.Equal(t, []notify.Notification{{Type: notify.Success, Message: "User 'bob' deleted successfully."}}, rec.all())
}

func TestAdminUsers_Render(t *testing.T) {
	v, _ := loadedAdmin(t, usersFake())

	var buf bytes.Buffer
	v.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "Manage Users")
	assert.Contains(t, out, "deluser 3")
	assert.NotContains(t, out, "deluser 1")
	assert.NotContains(t, out, "deluser 2")
	assert.Contains(t, out, "N/A")
}

func TestAdminUsers_Empty(t *testing.T) {
	d, _ := newDeps(t, signedIn("root", true), &clienttest.Fake{})
	v := NewAdminUsers(d)
	_, err := v.Load(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	v.Render(&buf)
	assert.Contains(t, buf.String(), "No users found.")
}

func TestAdminUsers_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		nav  Nav
	}{
		{"unauthorized", client.ErrUnauthorized, "/login"},
		{"forbidden", client.ErrForbidden, "/"},
		{"server", client.ErrServer, Stay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &clienttest.Fake{ListUsersFn: func(string) ([]models.AdminUser, error) {
				return nil, tt.err
			}}
			d, rec := newDeps(t, signedIn("root", true), fc)

			nav, err := NewAdminUsers(d).Load(context.Background())
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.nav, nav)
			assert.Len(t, rec.all(), 1)
		})
	}
}

func TestAdminUsers_NoSession(t *testing.T) {
	fc := &clienttest.Fake{}
	d, _ := newDeps(t, &fakeSession{}, fc)
	v := NewAdminUsers(d)

	nav, err := v.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Nav("/login"), nav)
	assert.Empty(t, fc.Calls())

	var buf bytes.Buffer
	v.Render(&buf)
	assert.Contains(t, buf.String(), "Authentication required.")
}
