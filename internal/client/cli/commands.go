package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/router"
	"github.com/dmitrijs2005/communityhub/internal/client/views"
	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/filex"
	"github.com/dmitrijs2005/communityhub/internal/netx"
)

var (
	errWrongPage = errors.New("command not available on this page")
	errCancelled = errors.New("cancelled")
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) requirePage(page router.Page, hint string) error {
	if a.route.Page != page {
		a.say("%s", hint)
		return errWrongPage
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseBoard(a *App, s string) (models.Board, error) {
	b, err := models.ParseBoard(s)
	if err != nil {
		a.say("Unknown board %q. Use free or notice.", s)
	}
	return b, err
}

func (a *App) Home(ctx context.Context) error {
	return a.navigate(ctx, "/")
}

func (a *App) Go(ctx context.Context, path string) error {
	return a.navigate(ctx, path)
}

// Refresh reloads the current page. The login page keeps its pending
// destination.
func (a *App) Refresh(ctx context.Context) error {
	if a.route.Page == router.PageLogin {
		a.render()
		return nil
	}
	return a.navigate(ctx, a.route.Path)
}

func (a *App) Login(ctx context.Context) error {
	if u := a.auth.User(); u != nil {
		a.say("You are already logged in as %s.", u.Username)
		return nil
	}
	if a.route.Page != router.PageLogin {
		if err := a.navigate(ctx, "/login"); err != nil {
			return err
		}
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := views.NewLogin(a.deps)
	nav, err := form.Submit(ctx, username, password, a.from)
	if err != nil {
		if form.Error != "" {
			a.say("! %s", form.Error)
		}
		return err
	}
	return a.navigate(ctx, string(nav))
}

func (a *App) Signup(ctx context.Context) error {
	if a.route.Page != router.PageSignup {
		if err := a.navigate(ctx, "/signup"); err != nil {
			return err
		}
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.reader, "Confirm Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form := views.NewSignup(a.deps)
	nav, err := form.Submit(ctx, username, password, confirm)
	if err != nil {
		if form.Error != "" {
			a.say("! %s", form.Error)
		}
		return err
	}
	return a.navigate(ctx, string(nav))
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say("You are not logged in.")
		return nil
	}
	a.auth.Logout(ctx)
	return a.navigate(ctx, "/")
}

func (a *App) MyPage(ctx context.Context) error {
	return a.navigate(ctx, "/my-page")
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.navigate(ctx, "/my-page")
	}
	if !Confirm(a.reader, "Are you sure you want to delete your account? This action is irreversible.", a.out) {
		return errCancelled
	}

	nav, err := views.NewMyPage(a.deps).DeleteAccount(ctx)
	if err != nil {
		return err
	}
	return a.navigate(ctx, string(nav))
}

func (a *App) Board(ctx context.Context, board string) error {
	b, err := parseBoard(a, board)
	if err != nil {
		return err
	}
	return a.navigate(ctx, "/board/"+string(b))
}

func (a *App) Post(ctx context.Context, id string) error {
	postID, err := parseID(id)
	if err != nil {
		a.say("Invalid post id %q.", id)
		return err
	}
	return a.navigate(ctx, fmt.Sprintf("/post/%d", postID))
}

func (a *App) requirePost() error {
	if err := a.requirePage(router.PagePost, "Open a post first: post <id>."); err != nil {
		return err
	}
	if a.post.Post() == nil {
		a.say("Post not found.")
		return errWrongPage
	}
	return nil
}

func (a *App) Comment(ctx context.Context, text string) error {
	if err := a.requirePost(); err != nil {
		return err
	}
	if err := a.post.AddComment(ctx, text); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) DeleteComment(ctx context.Context, id string) error {
	if err := a.requirePost(); err != nil {
		return err
	}
	commentID, err := parseID(id)
	if err != nil {
		a.say("Invalid comment id %q.", id)
		return err
	}
	if !Confirm(a.reader, "Are you sure you want to delete this comment? This action cannot be undone.", a.out) {
		return errCancelled
	}

	if err := a.post.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	a.render()
	return nil
}

// DeletePost asks for confirmation only when the user may delete the post;
// otherwise the view reports the refusal without a request.
func (a *App) DeletePost(ctx context.Context) error {
	if err := a.requirePost(); err != nil {
		return err
	}
	if a.post.CanDeletePost() &&
		!Confirm(a.reader, "Are you sure you want to delete this post? This action cannot be undone.", a.out) {
		return errCancelled
	}

	nav, err := a.post.DeletePost(ctx)
	if err != nil {
		return err
	}
	return a.navigate(ctx, string(nav))
}

// SaveImage downloads the attachment of the open post into path.
func (a *App) SaveImage(ctx context.Context, path string) (err error) {
	if err := a.requirePost(); err != nil {
		return err
	}
	url := a.post.Post().Image
	if url == "" {
		a.say("This post has no image.")
		return errWrongPage
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		a.say("! %v", err)
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	n, err := netx.Download(ctx, a.http, url, f)
	if err != nil {
		a.logger.Error(ctx, "image download failed", "url", url, "error", err)
		a.say("! Failed to download image.")
		return err
	}
	a.say("Saved %d bytes to %s.", n, path)
	return nil
}

// NewPost opens the create-post page and walks through the form.
func (a *App) NewPost(ctx context.Context, board string) error {
	b, err := parseBoard(a, board)
	if err != nil {
		return err
	}
	if err := a.navigate(ctx, "/post/create/"+string(b)); err != nil {
		return err
	}
	if a.route.Page != router.PageCreatePost {
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	a.create.SetTitle(title)
	a.create.SetContent(content)

	image, err := GetSimpleText(a.reader, "Image path (optional, Enter to skip)", a.out)
	if err != nil {
		return err
	}
	if image != "" {
		_ = a.attach(image)
	}

	return a.Submit(ctx)
}

func (a *App) attach(path string) error {
	ok, err := a.create.AttachImageFile(path)
	if err != nil {
		a.say("! %v", err)
		return err
	}
	if !ok {
		a.say("! %s", a.create.Errors().Image)
		return views.ErrInvalidInput
	}
	return nil
}

// Image attaches a file to the open create-post form; "-" removes it.
func (a *App) Image(ctx context.Context, path string) error {
	if err := a.requirePage(router.PageCreatePost, "Start a post first: newpost <free|notice>."); err != nil {
		return err
	}
	var err error
	if path == "-" {
		a.create.ClearImage()
	} else {
		err = a.attach(path)
	}
	a.render()
	return err
}

func (a *App) Submit(ctx context.Context) error {
	if err := a.requirePage(router.PageCreatePost, "Start a post first: newpost <free|notice>."); err != nil {
		return err
	}
	nav, err := a.create.Submit(ctx)
	if err != nil {
		a.render()
		return err
	}
	return a.navigate(ctx, string(nav))
}

func (a *App) Admin(ctx context.Context) error {
	return a.navigate(ctx, "/admin/users")
}

func (a *App) DeleteUser(ctx context.Context, id string) error {
	if err := a.requirePage(router.PageAdminUsers, "Open the admin panel first: admin."); err != nil {
		return err
	}
	userID, err := parseID(id)
	if err != nil {
		a.say("Invalid user id %q.", id)
		return err
	}

	for _, u := range a.users.Users() {
		if u.ID == userID {
			q := fmt.Sprintf("Are you sure you want to delete the user %s? This action cannot be undone.", u.Username)
			if !Confirm(a.reader, q, a.out) {
				return errCancelled
			}
			break
		}
	}

	if err := a.users.DeleteUser(ctx, userID); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) Toasts(context.Context) error {
	items := a.tray.Items()
	if len(items) == 0 {
		a.say("No notifications.")
		return nil
	}
	for _, t := range items {
		a.printToast(t)
	}
	return nil
}

func (a *App) Dismiss(_ context.Context, id string) error {
	toastID, err := parseID(id)
	if err != nil {
		a.say("Invalid notification id %q.", id)
		return err
	}
	if !a.tray.Dismiss(toastID) {
		a.say("Notification #%d is gone.", toastID)
	}
	return nil
}
