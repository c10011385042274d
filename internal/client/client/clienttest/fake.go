// Package clienttest provides a hand-driven client.Client for tests of the
// session and the views.
package clienttest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

var _ client.Client = (*Fake)(nil)

// Call records one invocation of the fake.
type Call struct {
	Method     string
	AuthHeader string
	ID         int64
	Args       []any
}

// Fake implements client.Client. Every method consults the matching func
// field; an unset field returns zero values and a nil error.
type Fake struct {
	SignupFn          func(username string, password []byte) (*models.SignupResult, error)
	LoginFn           func(authHeader string) (*models.LoginResult, error)
	DeleteMyAccountFn func(authHeader string) error
	ListUsersFn       func(authHeader string) ([]models.AdminUser, error)
	DeleteUserFn      func(userID int64, authHeader string) error
	CreatePostFn      func(post models.NewPost, authHeader string) (int64, error)
	ListPostsFn       func(board models.Board) ([]models.PostSummary, error)
	GetPostFn         func(postID int64) (*models.PostDetail, error)
	DeletePostFn      func(postID int64, authHeader string) error
	AddCommentFn      func(postID int64, content string, authHeader string) (int64, error)
	ListCommentsFn    func(postID int64) ([]models.Comment, error)
	DeleteCommentFn   func(commentID int64, authHeader string) error

	mu    sync.Mutex
	calls []Call
}

func (f *Fake) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Methods returns the names of the recorded invocations in order.
func (f *Fake) Methods() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

func (f *Fake) Signup(_ context.Context, username string, password []byte) (*models.SignupResult, error) {
	f.record(Call{Method: "Signup", Args: []any{username, string(password)}})
	if f.SignupFn == nil {
		return &models.SignupResult{Success: true, Username: username}, nil
	}
	return f.SignupFn(username, password)
}

func (f *Fake) Login(_ context.Context, authHeader string) (*models.LoginResult, error) {
	f.record(Call{Method: "Login", AuthHeader: authHeader})
	if f.LoginFn == nil {
		return &models.LoginResult{}, nil
	}
	return f.LoginFn(authHeader)
}

func (f *Fake) DeleteMyAccount(_ context.Context, authHeader string) error {
	f.record(Call{Method: "DeleteMyAccount", AuthHeader: authHeader})
	if f.DeleteMyAccountFn == nil {
		return nil
	}
	return f.DeleteMyAccountFn(authHeader)
}

func (f *Fake) ListUsers(_ context.Context, authHeader string) ([]models.AdminUser, error) {
	f.record(Call{Method: "ListUsers", AuthHeader: authHeader})
	if f.ListUsersFn == nil {
		return nil, nil
	}
	return f.ListUsersFn(authHeader)
}

func (f *Fake) DeleteUser(_ context.Context, userID int64, authHeader string) error {
	f.record(Call{Method: "DeleteUser", AuthHeader: authHeader, ID: userID})
	if f.DeleteUserFn == nil {
		return nil
	}
	return f.DeleteUserFn(userID, authHeader)
}

func (f *Fake) CreatePost(_ context.Context, post models.NewPost, authHeader string) (int64, error) {
	f.record(Call{Method: "CreatePost", AuthHeader: authHeader, Args: []any{post}})
	if f.CreatePostFn == nil {
		return 1, nil
	}
	return f.CreatePostFn(post, authHeader)
}

func (f *Fake) ListPosts(_ context.Context, board models.Board) ([]models.PostSummary, error) {
	f.record(Call{Method: "ListPosts", Args: []any{board}})
	if f.ListPostsFn == nil {
		return nil, nil
	}
	return f.ListPostsFn(board)
}

func (f *Fake) GetPost(_ context.Context, postID int64) (*models.PostDetail, error) {
	f.record(Call{Method: "GetPost", ID: postID})
	if f.GetPostFn == nil {
		return nil, nil
	}
	return f.GetPostFn(postID)
}

func (f *Fake) DeletePost(_ context.Context, postID int64, authHeader string) error {
	f.record(Call{Method: "DeletePost", AuthHeader: authHeader, ID: postID})
	if f.DeletePostFn == nil {
		return nil
	}
	return f.DeletePostFn(postID, authHeader)
}

func (f *Fake) AddComment(_ context.Context, postID int64, content string, authHeader string) (int64, error) {
	f.record(Call{Method: "AddComment", AuthHeader: authHeader, ID: postID, Args: []any{content}})
	if f.AddCommentFn == nil {
		return 1, nil
	}
	return f.AddCommentFn(postID, content, authHeader)
}

func (f *Fake) ListComments(_ context.Context, postID int64) ([]models.Comment, error) {
	f.record(Call{Method: "ListComments", ID: postID})
	if f.ListCommentsFn == nil {
		return nil, nil
	}
	return f.ListCommentsFn(postID)
}

func (f *Fake) DeleteComment(_ context.Context, commentID int64, authHeader string) error {
	f.record(Call{Method: "DeleteComment", AuthHeader: authHeader, ID: commentID})
	if f.DeleteCommentFn == nil {
		return nil
	}
	return f.DeleteCommentFn(commentID, authHeader)
}
