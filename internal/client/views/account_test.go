package views

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/communityhub/internal/client/client/clienttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ReturnsToFrom(t *testing.T) {
	s := &fakeSession{}
	d, _ := newDeps(t, s, &clienttest.Fake{})
	f := NewLogin(d)

	nav, err := f.Submit(context.Background(), "alice", []byte("secret"), "/post/create/free")
	require.NoError(t, err)
	assert.Equal(t, Nav("/post/create/free"), nav)
	assert.Equal(t, "alice", s.User().Username)

	nav, err = f.Submit(context.Background(), "alice", []byte("secret"), "")
	require.NoError(t, err)
	assert.Equal(t, Nav("/"), nav)
}

func TestLogin_Failure(t *testing.T) {
	s := &fakeSession{loginErr: errors.New("rejected")}
	d, _ := newDeps(t, s, &clienttest.Fake{})
	f := NewLogin(d)

	nav, err := f.Submit(context.Background(), "alice", []byte("bad"), "/my-page")
	require.Error(t, err)
	assert.Equal(t, Stay, nav)
	assert.Equal(t, "Login failed. Please check your credentials.", f.Error)
}

func TestLogin_RequiredFields(t *testing.T) {
	s := &fakeSession{}
	d, _ := newDeps(t, s, &clienttest.Fake{})

	_, err := NewLogin(d).Submit(context.Background(), "", []byte("x"), "")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, s.calls)
}

func TestSignup_PasswordMismatch(t *testing.T) {
	s := &fakeSession{}
	d, _ := newDeps(t, s, &clienttest.Fake{})
	f := NewSignup(d)

	nav, err := f.Submit(context.Background(), "bob", []byte("pw1"), []byte("pw2"))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, Stay, nav)
	assert.Equal(t, "Passwords do not match.", f.Error)
	assert.Empty(t, s.calls)
}

func TestSignup_Success(t *testing.T) {
	s := &fakeSession{}
	d, _ := newDeps(t, s, &clienttest.Fake{})

	nav, err := NewSignup(d).Submit(context.Background(), "bob", []byte("pw12"), []byte("pw12"))
	require.NoError(t, err)
	assert.Equal(t, Nav("/login"), nav)
	assert.Equal(t, []string{"Signup"}, s.calls)
}

func TestSignup_Failure(t *testing.T) {
	s := &fakeSession{signupErr: errors.New("taken")}
	d, _ := newDeps(t, s, &clienttest.Fake{})

	nav, err := NewSignup(d).Submit(context.Background(), "bob", []byte("pw12"), []byte("pw12"))
	require.Error(t, err)
	assert.Equal(t, Stay, nav)
}

func TestMyPage(t *testing.T) {
	s := signedIn("alice", false)
	d, _ := newDeps(t, s, &clienttest.Fake{})
	v := NewMyPage(d)

	var buf bytes.Buffer
	v.Render(&buf)
	assert.Contains(t, buf.String(), "Username: alice")
	assert.Contains(t, buf.String(), "Role: User")

	nav, err := v.DeleteAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Nav("/"), nav)
	assert.Nil(t, s.User())

	nav, err = v.DeleteAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Nav("/login"), nav)
	assert.Equal(t, []string{"DeleteAccount"}, s.calls)
}

func TestMyPage_AdminRoleAndFailure(t *testing.T) {
	s := signedIn("root", true)
	s.deleteErr = errors.New("boom")
	d, _ := newDeps(t, s, &clienttest.Fake{})
	v := NewMyPage(d)

	var buf bytes.Buffer
	v.Render(&buf)
	assert.Contains(t, buf.String(), "Role: Administrator")

	nav, err := v.DeleteAccount(context.Background())
	require.Error(t, err)
	assert.Equal(t, Stay, nav)
	assert.NotNil(t, s.User())
}
