package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

const msgPasswordMismatch = "Passwords do not match."

// Login is the login form. Error holds the inline message of the last
// failed attempt.
type Login struct {
	deps  Deps
	Error string
}

func NewLogin(d Deps) *Login {
	return &Login{deps: d}
}

// Submit signs in and returns to from, or home when from is empty.
func (f *Login) Submit(ctx context.Context, username string, password []byte, from string) (Nav, error) {
	f.Error = ""
	if strings.TrimSpace(username) == "" || len(password) == 0 {
		f.Error = "Username and password are required."
		return Stay, ErrInvalidInput
	}

	if err := f.deps.Session.Login(ctx, username, password); err != nil {
		f.Error = "Login failed. Please check your credentials."
		return Stay, err
	}

	if from == "" {
		from = "/"
	}
	return Nav(from), nil
}

// Signup is the registration form.
type Signup struct {
	deps  Deps
	Error string
}

func NewSignup(d Deps) *Signup {
	return &Signup{deps: d}
}

// Submit registers the account and goes to the login page. A confirmation
// that does not match is refused without a request.
func (f *Signup) Submit(ctx context.Context, username string, password, confirm []byte) (Nav, error) {
	f.Error = ""
	if strings.TrimSpace(username) == "" || len(password) == 0 {
		f.Error = "Username and password are required."
		return Stay, ErrInvalidInput
	}
	if !bytes.Equal(password, confirm) {
		f.Error = msgPasswordMismatch
		return Stay, ErrInvalidInput
	}

	if err := f.deps.Session.Signup(ctx, username, password); err != nil {
		return Stay, err
	}
	return "/login", nil
}

type MyPage struct {
	deps Deps
}

func NewMyPage(d Deps) *MyPage {
	return &MyPage{deps: d}
}

// DeleteAccount deletes the signed-in account and goes home.
func (v *MyPage) DeleteAccount(ctx context.Context) (Nav, error) {
	if v.deps.Session.User() == nil {
		return "/login", nil
	}
	if err := v.deps.Session.DeleteAccount(ctx); err != nil {
		return Stay, err
	}
	return "/", nil
}

func (v *MyPage) Render(w io.Writer) {
	user := v.deps.Session.User()
	if user == nil {
		fmt.Fprintln(w, "You are not logged in.")
		return
	}

	fmt.Fprintln(w, "My Page")
	fmt.Fprintf(w, "Username: %s\n", user.Username)
	fmt.Fprintf(w, "Role: %s\n", user.Role())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Deletion")
	fmt.Fprintln(w, "Deleting your account is permanent and cannot be undone. All your posts and comments will also be removed.")
	fmt.Fprintln(w, "  [Delete My Account: deleteaccount]")
}
