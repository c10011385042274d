package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
)

type PostDetail struct {
	deps     Deps
	id       int64
	post     *models.PostDetail
	comments []models.Comment
}

func NewPostDetail(d Deps, postID int64) *PostDetail {
	return &PostDetail{deps: d, id: postID}
}

// Load fetches the post and its comments. Any failure is reported and sends
// the user home.
func (v *PostDetail) Load(ctx context.Context) (Nav, error) {
	post, err := v.deps.Posts.Get(ctx, v.id)
	if err != nil {
		v.deps.fail(err, "Failed to load post details.")
		return "/", err
	}
	v.post = post
	if post == nil {
		return Stay, nil
	}

	comments, err := v.deps.Posts.Comments(ctx, v.id)
	if err != nil {
		v.deps.fail(err, "Failed to load post details.")
		return "/", err
	}
	v.comments = comments
	return Stay, nil
}

func (v *PostDetail) Post() *models.PostDetail {
	return v.post
}

func (v *PostDetail) Comments() []models.Comment {
	return v.comments
}

func (v *PostDetail) CanDeletePost() bool {
	return v.post != nil && canModify(v.deps.Session.User(), v.post.Author)
}

func (v *PostDetail) CanDeleteComment(c models.Comment) bool {
	return canModify(v.deps.Session.User(), c.Author)
}

func (v *PostDetail) refreshComments(ctx context.Context) error {
	comments, err := v.deps.Posts.Comments(ctx, v.id)
	if err != nil {
		return err
	}
	v.comments = comments
	return nil
}

// AddComment posts content and reloads the comment list.
func (v *PostDetail) AddComment(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment is empty: %w", ErrInvalidInput)
	}

	if _, err := v.deps.Posts.AddComment(ctx, v.id, content); err != nil {
		v.deps.fail(err, "Failed to add comment.")
		return err
	}
	if err := v.refreshComments(ctx); err != nil {
		v.deps.fail(err, "Failed to add comment.")
		return err
	}

	v.deps.Notify.Emit(notify.Success, "Comment added successfully!")
	return nil
}

// DeleteComment removes one of the loaded comments and reloads the list.
func (v *PostDetail) DeleteComment(ctx context.Context, commentID int64) error {
	var target *models.Comment
	for i := range v.comments {
		if v.comments[i].ID == commentID {
			target = &v.comments[i]
			break
		}
	}
	if target == nil {
		v.deps.Notify.Emit(notify.Error, fmt.Sprintf("Comment #%d not found.", commentID))
		return fmt.Errorf("comment %d: %w", commentID, ErrInvalidInput)
	}
	if !v.CanDeleteComment(*target) {
		v.deps.Notify.Emit(notify.Error, "You do not have permission to delete this comment.")
		return ErrPermission
	}

	if err := v.deps.Posts.DeleteComment(ctx, commentID); err != nil {
		v.deps.fail(err, "Failed to delete comment.")
		return err
	}
	v.deps.Notify.Emit(notify.Success, "Comment deleted successfully.")

	if err := v.refreshComments(ctx); err != nil {
		v.deps.fail(err, "Failed to load post details.")
		return err
	}
	return nil
}

// DeletePost removes the post and returns its board.
func (v *PostDetail) DeletePost(ctx context.Context) (Nav, error) {
	if v.post == nil {
		return Stay, fmt.Errorf("no post loaded: %w", ErrInvalidInput)
	}
	if !v.CanDeletePost() {
		v.deps.Notify.Emit(notify.Error, "You do not have permission to delete this post.")
		return Stay, ErrPermission
	}

	if err := v.deps.Posts.Delete(ctx, v.post.ID); err != nil {
		v.deps.fail(err, "Failed to delete post.")
		return Stay, err
	}

	v.deps.Notify.Emit(notify.Success, "Post deleted successfully.")

	board := v.post.Board
	if board == "" {
		board = models.BoardFree
	}
	return Nav("/board/" + string(board)), nil
}

func (v *PostDetail) Render(w io.Writer) {
	if v.post == nil {
		fmt.Fprintln(w, "Post not found.")
		return
	}
	p := v.post

	fmt.Fprintln(w, p.Title)
	fmt.Fprintf(w, "By %s • %s • %d views\n", p.Author, p.CreatedAt.Date(), p.Views)
	if v.CanDeletePost() {
		fmt.Fprintln(w, "  [Delete Post: delpost]")
	}
	if p.Image != "" {
		fmt.Fprintf(w, "Image: %s\n", p.Image)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Comments (%d)\n", len(v.comments))
	if v.deps.Session.User() != nil {
		fmt.Fprintln(w, "  Add a comment: comment <text>")
	} else {
		fmt.Fprintln(w, "  Log in (/login) or Sign up (/signup) to post a comment.")
	}

	if len(v.comments) == 0 {
		fmt.Fprintln(w, "No comments yet. Be the first to comment!")
		return
	}
	for _, c := range v.comments {
		fmt.Fprintf(w, "- [%d] %s\n", c.ID, c.Content)
		fmt.Fprintf(w, "    By: %s • %s", c.Author, c.CreatedAt.DateTime())
		if v.CanDeleteComment(c) {
			fmt.Fprintf(w, "  [delcomment %d]", c.ID)
		}
		fmt.Fprintln(w)
	}
}
