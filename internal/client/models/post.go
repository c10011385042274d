package models

import (
	"fmt"
)

// Board is one of the two fixed discussion categories.
type Board string

const (
	BoardFree   Board = "free"
	BoardNotice Board = "notice"
)

// ParseBoard validates a board name.
func ParseBoard(s string) (Board, error) {
	switch b := Board(s); b {
	case BoardFree, BoardNotice:
		return b, nil
	default:
		return "", fmt.Errorf("unknown board %q", s)
	}
}

// Title is the display name of the board.
func (b Board) Title() string {
	if b == BoardFree {
		return "Free Board"
	}
	return "Notice Board"
}

type PostSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt Timestamp `json:"created_at"`
	Views     int64     `json:"views"`
}

type PostDetail struct {
	PostSummary
	Content string `json:"content"`
	// Image is an absolute URL once returned by the API client, empty when
	// the post has no attachment.
	Image string `json:"image"`
	Board Board  `json:"board,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt Timestamp `json:"created_at"`
	OwnerID   int64     `json:"owner_id,omitempty"`
	PostID    int64     `json:"post_id,omitempty"`
}

// Image is a validated attachment ready to be sent as a multipart part.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewPost is the payload of POST /posts. Image is optional.
type NewPost struct {
	Title   string
	Content string
	Board   Board
	Image   *Image
}
