package views

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/dmitrijs2005/communityhub/internal/common"
)

const (
	msgImageTooLarge   = "Image size should not exceed 5MB."
	msgImageBadType    = "Invalid image type. Only JPG, PNG, GIF are allowed."
	msgTitleRequired   = "Title is required."
	msgContentRequired = "Content is required."
)

// FieldErrors are the inline errors of the create-post form.
type FieldErrors struct {
	Title   string
	Content string
	Image   string
	Form    string
}

type CreatePost struct {
	deps    Deps
	board   models.Board
	title   string
	content string
	image   *models.Image
	errs    FieldErrors
}

func NewCreatePost(d Deps, board models.Board) *CreatePost {
	return &CreatePost{deps: d, board: board}
}

func (f *CreatePost) SetTitle(s string) {
	f.title = s
	f.errs.Title = ""
}

func (f *CreatePost) SetContent(s string) {
	f.content = s
	f.errs.Content = ""
}

func (f *CreatePost) Errors() FieldErrors {
	return f.errs
}

// Image is the attachment that would be submitted, nil if none.
func (f *CreatePost) Image() *models.Image {
	return f.image
}

// AttachImage validates and selects an attachment. An invalid image sets the
// image error and leaves nothing selected.
func (f *CreatePost) AttachImage(name string, data []byte) bool {
	if len(data) > common.MaxImageSize {
		return f.rejectImage(msgImageTooLarge)
	}

	contentType := http.DetectContentType(data)
	if _, ok := common.AllowedImageTypes[contentType]; !ok {
		return f.rejectImage(msgImageBadType)
	}

	f.errs.Image = ""
	f.image = &models.Image{Name: filepath.Base(name), ContentType: contentType, Data: data}
	return true
}

// AttachImageFile is AttachImage for a file on disk. Oversized files are
// rejected without being read.
func (f *CreatePost) AttachImageFile(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if st.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	if st.Size() > common.MaxImageSize {
		return f.rejectImage(msgImageTooLarge), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return f.AttachImage(path, data), nil
}

func (f *CreatePost) rejectImage(msg string) bool {
	f.errs.Image = msg
	f.image = nil
	return false
}

func (f *CreatePost) ClearImage() {
	f.image = nil
	f.errs.Image = ""
}

func (f *CreatePost) validate() bool {
	f.errs.Title, f.errs.Content = "", ""
	if strings.TrimSpace(f.title) == "" {
		f.errs.Title = msgTitleRequired
	}
	if strings.TrimSpace(f.content) == "" {
		f.errs.Content = msgContentRequired
	}
	return f.errs.Title == "" && f.errs.Content == ""
}

// Submit creates the post and navigates to it.
func (f *CreatePost) Submit(ctx context.Context) (Nav, error) {
	f.errs.Form = ""

	if !f.validate() {
		return Stay, ErrInvalidInput
	}
	if f.errs.Image != "" {
		f.deps.Notify.Emit(notify.Error, "Please fix the image error before submitting.")
		return Stay, ErrInvalidInput
	}

	id, err := f.deps.Posts.Create(ctx, models.NewPost{
		Title:   f.title,
		Content: f.content,
		Board:   f.board,
		Image:   f.image,
	})
	if err != nil {
		f.deps.fail(err, "Failed to create post.")
		f.errs.Form = errorText(err, "An unexpected error occurred.")
		return Stay, err
	}

	f.deps.Notify.Emit(notify.Success, "Post created successfully!")
	return Nav(fmt.Sprintf("/post/%d", id)), nil
}

func (f *CreatePost) Render(w io.Writer) {
	fmt.Fprintln(w, "Create New Post")
	fmt.Fprintf(w, "Posting to: %s\n", f.board.Title())
	if f.errs.Form != "" {
		fmt.Fprintf(w, "! %s\n", f.errs.Form)
	}
	fmt.Fprintln(w)

	field := func(label, value, errMsg string) {
		fmt.Fprintf(w, "%s: %s\n", label, value)
		if errMsg != "" {
			fmt.Fprintf(w, "  ! %s\n", errMsg)
		}
	}
	field("Title", f.title, f.errs.Title)
	field("Content", f.content, f.errs.Content)

	image := "(none)"
	if f.image != nil {
		image = fmt.Sprintf("%s (%s, %d bytes)", f.image.Name, f.image.ContentType, len(f.image.Data))
	}
	field("Image (Optional, Max 5MB, JPG/PNG/GIF)", image, f.errs.Image)
}
