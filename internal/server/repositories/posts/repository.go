package posts

import (
	"context"

	"github.com/dmitrijs2005/communityhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	List(ctx context.Context, board string) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	IncrementViews(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ImagesByAuthor(ctx context.Context, authorID int64) ([]string, error)
}
