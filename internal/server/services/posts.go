package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/dbx"
	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/dmitrijs2005/communityhub/internal/server/images"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	"github.com/dmitrijs2005/communityhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Upload is an image received with a new post.
type Upload struct {
	Filename string
	Data     []byte
}

type NewPost struct {
	Title   string
	Content string
	Board   string
	Image   *Upload
}

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      images.Store
	logger      logging.Logger

	newKey func() string
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, store images.Store, logger logging.Logger) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		images:      store,
		logger:      logger.With("module", "posts"),
		newKey:      uuid.NewString,
	}
}

func boardError() error {
	return invalid("board", fmt.Sprintf("Board must be one of: %s.", strings.Join(models.Boards, ", ")))
}

// sniffImage returns the storage extension and MIME type of data, judged by
// content rather than by the name or header the client sent.
func sniffImage(data []byte) (ext, contentType string, err error) {
	if len(data) > common.MaxImageSize {
		return "", "", invalid("file", "Image size should not exceed 5MB.")
	}
	ct := http.DetectContentType(data)
	ext, ok := common.AllowedImageTypes[ct]
	if !ok {
		return "", "", invalid("file", "Invalid image type. Only JPG, PNG, GIF are allowed.")
	}
	return ext, ct, nil
}

func (s *PostService) Create(ctx context.Context, author *models.User, in NewPost) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	switch {
	case title == "":
		return nil, invalid("title", "Title is required.")
	case content == "":
		return nil, invalid("content", "Content is required.")
	case !models.ValidBoard(in.Board):
		return nil, boardError()
	}

	post := &models.Post{Title: title, Content: content, Board: in.Board, AuthorID: author.ID}

	var key string
	if in.Image != nil && len(in.Image.Data) > 0 {
		ext, ct, err := sniffImage(in.Image.Data)
		if err != nil {
			return nil, err
		}
		key = s.newKey() + ext
		if err := s.images.Put(ctx, key, ct, in.Image.Data); err != nil {
			return nil, fmt.Errorf("error storing image: %w", err)
		}
		post.ImagePath = images.PathPrefix + key
	}

	created, err := s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		if key != "" {
			removeImage(ctx, s.images, s.logger, post.ImagePath)
		}
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	created.Author = author.Username

	s.logger.Info(ctx, "post created", "post_id", created.ID, "board", created.Board, "image", key != "")
	return created, nil
}

func (s *PostService) List(ctx context.Context, board string) ([]models.Post, error) {
	if !models.ValidBoard(board) {
		return nil, boardError()
	}
	return s.repomanager.Posts(s.db).List(ctx, board)
}

// Get returns the post and counts the view.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	var post *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if err := repo.IncrementViews(ctx, id); err != nil {
			return err
		}
		var err error
		post, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, notFound("Post not found.")
		}
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by actor. Administrators may delete any post.
func (s *PostService) Delete(ctx context.Context, actor *models.User, id int64) error {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound("Post not found.")
		}
		return err
	}
	if post.AuthorID != actor.ID && !actor.IsAdmin {
		return forbidden("Not authorized to delete this post.")
	}

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound("Post not found.")
		}
		return err
	}

	if post.ImagePath != "" {
		removeImage(ctx, s.images, s.logger, post.ImagePath)
	}
	return nil
}

// Image opens a stored attachment by key.
func (s *PostService) Image(ctx context.Context, key string) (*images.Object, error) {
	obj, err := s.images.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, images.ErrInvalidKey) {
			return nil, notFound("Image not found.")
		}
		return nil, err
	}
	return obj, nil
}
