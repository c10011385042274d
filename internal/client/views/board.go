package views

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

type Board struct {
	deps  Deps
	board models.Board
	posts []models.PostSummary
	err   string
}

func NewBoard(d Deps, board models.Board) *Board {
	return &Board{deps: d, board: board}
}

// Load fetches the board. On failure the previously loaded posts are kept.
func (v *Board) Load(ctx context.Context) error {
	posts, err := v.deps.Posts.List(ctx, v.board)
	if err != nil {
		v.err = v.deps.fail(err, "Failed to fetch posts.")
		return err
	}
	v.err = ""
	v.posts = posts
	return nil
}

func (v *Board) Posts() []models.PostSummary {
	return v.posts
}

func (v *Board) Render(w io.Writer) {
	user := v.deps.Session.User()

	fmt.Fprintln(w, v.board.Title())
	if user != nil {
		fmt.Fprintf(w, "  Create New Post (/post/create/%s)\n", v.board)
	}
	fmt.Fprintln(w)

	if v.err != "" {
		fmt.Fprintln(w, v.err)
		return
	}

	if len(v.posts) == 0 {
		fmt.Fprintln(w, "No posts found in this board yet.")
		if user != nil {
			fmt.Fprintf(w, "Be the first to create one! (/post/create/%s)\n", v.board)
		}
		return
	}

	for _, p := range v.posts {
		fmt.Fprintf(w, "#%d %s\n", p.ID, p.Title)
		fmt.Fprintf(w, "   By: %s • %s • Views: %d  (/post/%d)\n", p.Author, p.CreatedAt.Date(), p.Views, p.ID)
	}
}
