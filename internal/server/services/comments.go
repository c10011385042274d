package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	"github.com/dmitrijs2005/communityhub/internal/server/repositories/repomanager"
)

type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

func (s *CommentService) Add(ctx context.Context, actor *models.User, postID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "Comment cannot be empty.")
	}

	c, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{PostID: postID, AuthorID: actor.ID, Content: content})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, notFound("Post not found.")
		}
		return nil, err
	}
	c.Author = actor.Username
	return c, nil
}

// List returns the comments of a post, oldest first.
func (s *CommentService) List(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.repomanager.Posts(s.db).Get(ctx, postID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, notFound("Post not found.")
		}
		return nil, err
	}
	return s.repomanager.Comments(s.db).ListByPost(ctx, postID)
}

// Delete removes a comment written by actor. Administrators may delete any
// comment.
func (s *CommentService) Delete(ctx context.Context, actor *models.User, id int64) error {
	repo := s.repomanager.Comments(s.db)

	c, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound("Comment not found.")
		}
		return err
	}
	if c.AuthorID != actor.ID && !actor.IsAdmin {
		return forbidden("Not authorized to delete this comment.")
	}

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound("Comment not found.")
		}
		return err
	}
	return nil
}
