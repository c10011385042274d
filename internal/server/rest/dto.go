package rest

import (
	"time"

	"github.com/dmitrijs2005/communityhub/internal/server/models"
)

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type postSummaryDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Views     int64     `json:"views"`
}

type postDetailDTO struct {
	postSummaryDTO
	Content string  `json:"content"`
	Image   *string `json:"image"`
	Board   string  `json:"board"`
}

type commentDTO struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int64     `json:"owner_id"`
	PostID    int64     `json:"post_id"`
}

func newUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

func newPostSummary(p *models.Post) postSummaryDTO {
	return postSummaryDTO{ID: p.ID, Title: p.Title, Author: p.Author, CreatedAt: p.CreatedAt, Views: p.Views}
}

func newPostDetail(p *models.Post) postDetailDTO {
	d := postDetailDTO{postSummaryDTO: newPostSummary(p), Content: p.Content, Board: p.Board}
	if p.ImagePath != "" {
		img := p.ImagePath
		d.Image = &img
	}
	return d
}

func newCommentDTO(c *models.Comment) commentDTO {
	return commentDTO{ID: c.ID, Content: c.Content, Author: c.Author, CreatedAt: c.CreatedAt, OwnerID: c.AuthorID, PostID: c.PostID}
}
