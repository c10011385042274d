// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
}

type Post struct {
	ID        int64
	Title     string
	Content   string
	Board     string
	AuthorID  int64
	Author    string
	ImagePath string
	Views     int64
	CreatedAt time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Author    string
	Content   string
	CreatedAt time.Time
}

// Boards lists the valid values of Post.Board.
var Boards = []string{"free", "notice"}

// ValidBoard reports whether b is one of Boards.
func ValidBoard(b string) bool {
	for _, v := range Boards {
		if v == b {
			return true
		}
	}
	return false
}
