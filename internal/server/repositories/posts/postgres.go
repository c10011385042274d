package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/dbx"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (title, content, board, author_id, image_path)
         VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id, views, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Board, post.AuthorID, post.ImagePath).
		Scan(&post.ID, &post.Views, &post.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

// List returns the posts of a board, newest first. Content is not loaded.
func (r *PostgresRepository) List(ctx context.Context, board string) ([]models.Post, error) {

	query :=
		`SELECT p.id, p.title, p.board, p.author_id, u.username, p.views, p.created_at
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.board = $1
		 ORDER BY p.created_at DESC, p.id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, board)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Board, &p.AuthorID, &p.Author, &p.Views, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Post, error) {

	query :=
		`SELECT p.id, p.title, p.content, p.board, p.author_id, u.username,
		        COALESCE(p.image_path, ''), p.views, p.created_at
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1
		 `

	p := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.Board, &p.AuthorID, &p.Author, &p.ImagePath, &p.Views, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// Delete removes the post and, through the foreign key, its comments.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

// ImagesByAuthor lists the stored image keys of a user's posts.
func (r *PostgresRepository) ImagesByAuthor(ctx context.Context, authorID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT image_path FROM posts WHERE author_id = $1 AND image_path IS NOT NULL`, authorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return keys, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
