package services

import (
	"context"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

// Credentials is the part of the session the content services need.
type Credentials interface {
	AuthHeader() string
}

// PostService reads and writes posts and comments. Mutations attach the
// session's credential header and fail with ErrNotLoggedIn without one,
// before any request is made.
type PostService interface {
	List(ctx context.Context, board models.Board) ([]models.PostSummary, error)
	Get(ctx context.Context, postID int64) (*models.PostDetail, error)
	Create(ctx context.Context, post models.NewPost) (int64, error)
	Delete(ctx context.Context, postID int64) error

	Comments(ctx context.Context, postID int64) ([]models.Comment, error)
	AddComment(ctx context.Context, postID int64, content string) (int64, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type postService struct {
	client client.Client
	creds  Credentials
}

func NewPostService(c client.Client, creds Credentials) PostService {
	return &postService{client: c, creds: creds}
}

func (s *postService) header() (string, error) {
	h := s.creds.AuthHeader()
	if h == "" {
		return "", ErrNotLoggedIn
	}
	return h, nil
}

func (s *postService) List(ctx context.Context, board models.Board) ([]models.PostSummary, error) {
	return s.client.ListPosts(ctx, board)
}

func (s *postService) Get(ctx context.Context, postID int64) (*models.PostDetail, error) {
	return s.client.GetPost(ctx, postID)
}

func (s *postService) Create(ctx context.Context, post models.NewPost) (int64, error) {
	h, err := s.header()
	if err != nil {
		return 0, err
	}
	return s.client.CreatePost(ctx, post, h)
}

func (s *postService) Delete(ctx context.Context, postID int64) error {
	h, err := s.header()
	if err != nil {
		return err
	}
	return s.client.DeletePost(ctx, postID, h)
}

func (s *postService) Comments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.client.ListComments(ctx, postID)
}

func (s *postService) AddComment(ctx context.Context, postID int64, content string) (int64, error) {
	h, err := s.header()
	if err != nil {
		return 0, err
	}
	return s.client.AddComment(ctx, postID, content, h)
}

func (s *postService) DeleteComment(ctx context.Context, commentID int64) error {
	h, err := s.header()
	if err != nil {
		return err
	}
	return s.client.DeleteComment(ctx, commentID, h)
}
