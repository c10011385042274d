package comments

import (
	"context"

	"github.com/dmitrijs2005/communityhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}
