package client

import (
	"context"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

// Client is the CommunityHub REST API. Privileged operations take the
// session's credential header.
type Client interface {
	Signup(ctx context.Context, username string, password []byte) (*models.SignupResult, error)
	Login(ctx context.Context, authHeader string) (*models.LoginResult, error)
	DeleteMyAccount(ctx context.Context, authHeader string) error

	ListUsers(ctx context.Context, authHeader string) ([]models.AdminUser, error)
	DeleteUser(ctx context.Context, userID int64, authHeader string) error

	CreatePost(ctx context.Context, post models.NewPost, authHeader string) (int64, error)
	ListPosts(ctx context.Context, board models.Board) ([]models.PostSummary, error)
	GetPost(ctx context.Context, postID int64) (*models.PostDetail, error)
	DeletePost(ctx context.Context, postID int64, authHeader string) error

	AddComment(ctx context.Context, postID int64, content string, authHeader string) (int64, error)
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64, authHeader string) error
}
