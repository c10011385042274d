package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/config"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/dmitrijs2005/communityhub/internal/client/router"
	"github.com/dmitrijs2005/communityhub/internal/client/services"
	"github.com/dmitrijs2005/communityhub/internal/client/views"
	"github.com/dmitrijs2005/communityhub/internal/logging"
)

var errTooManyRedirects = errors.New("too many redirects")

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	auth   services.AuthService
	tray   *notify.Tray
	router *router.Router
	deps   views.Deps
	http   *http.Client

	reader *bufio.Reader
	out    io.Writer

	route  router.Route
	from   string
	board  *views.Board
	post   *views.PostDetail
	create *views.CreatePost
	users  *views.AdminUsers
}

// NewApp opens the local session database and connects the views to the
// API at c.ServerURL.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, api, db, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, db *sql.DB, logger logging.Logger, in io.Reader, out io.Writer) *App {
	bus := notify.NewBus()

	a := &App{
		config: c,
		logger: logger.With("module", "cli"),
		db:     db,
		router: router.New(),
		http:   &http.Client{Timeout: c.RequestTimeout},
		reader: bufio.NewReader(in),
		out:    out,
	}

	a.auth = services.NewAuthService(api, db, bus, logger)
	a.deps = views.Deps{
		Session: a.auth,
		Posts:   services.NewPostService(api, a.auth),
		Admin:   services.NewAdminService(api, a.auth),
		Notify:  bus,
	}
	a.tray = notify.NewTray(bus, c.NotificationTTL, a.printToast)
	a.route = a.router.Match("/")

	return a
}

// Run restores the saved session, shows the home page and blocks in the
// REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.auth.Restore(ctx)

	fmt.Fprintln(a.out, "Welcome to CommunityHub CLI (type 'help' for commands)")
	if err := a.Home(ctx); err != nil {
		a.logger.Warn(ctx, "initial page failed", "error", err)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	a.tray.Close()
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.auth.User() != nil
}

func (a *App) isAdmin() bool {
	u := a.auth.User()
	return u != nil && u.IsAdmin
}

func (a *App) status() string {
	s := " " + a.route.Path
	if u := a.auth.User(); u != nil {
		s = fmt.Sprintf(" [%s]%s", u.Username, s)
	}
	return s
}

func (a *App) printToast(t notify.Toast) {
	fmt.Fprintf(a.out, "[%s #%d] %s\n", t.Type, t.ID, t.Message)
}

// navigate resolves path through the router and guards, loads the page and
// follows any redirect the page asks for.
func (a *App) navigate(ctx context.Context, path string) error {
	const maxHops = 5

	// The first page error is reported even when a redirect succeeds.
	var pageErr error
	for i := 0; i < maxHops; i++ {
		// Guards wait for the session to settle; say so while they do.
		if a.auth.IsLoading() {
			fmt.Fprintln(a.out, "Loading...")
		}
		route, from, err := a.router.Resolve(ctx, a.auth, path)
		if err != nil {
			return err
		}

		a.route = route
		if route.Page == router.PageLogin {
			a.from = from
		} else {
			a.from = ""
		}

		next, err := a.load(ctx)
		if pageErr == nil {
			pageErr = err
		}
		if next == views.Stay {
			a.render()
			return pageErr
		}
		path = string(next)
	}
	return errTooManyRedirects
}

func (a *App) load(ctx context.Context) (views.Nav, error) {
	switch a.route.Page {
	case router.PageBoard:
		a.board = views.NewBoard(a.deps, a.route.Board)
		return views.Stay, a.board.Load(ctx)
	case router.PagePost:
		a.post = views.NewPostDetail(a.deps, a.route.PostID)
		return a.post.Load(ctx)
	case router.PageCreatePost:
		a.create = views.NewCreatePost(a.deps, a.route.Board)
		return views.Stay, nil
	case router.PageAdminUsers:
		a.users = views.NewAdminUsers(a.deps)
		return a.users.Load(ctx)
	}
	return views.Stay, nil
}

func (a *App) render() {
	w := a.out
	user := a.auth.User()

	fmt.Fprintln(w, "----------------------------------------")
	views.RenderNavbar(w, user)
	fmt.Fprintln(w)

	switch a.route.Page {
	case router.PageLogin:
		fmt.Fprintln(w, "Login")
		fmt.Fprintln(w, "Type 'login' to sign in.")
		if a.from != "" {
			fmt.Fprintf(w, "You will be returned to %s afterwards.\n", a.from)
		}
		fmt.Fprintln(w, "Don't have an account? Type 'signup'.")
	case router.PageSignup:
		fmt.Fprintln(w, "Sign Up")
		fmt.Fprintln(w, "Type 'signup' to create an account.")
		fmt.Fprintln(w, "Already have an account? Type 'login'.")
	case router.PageMyPage:
		views.NewMyPage(a.deps).Render(w)
	case router.PageBoard:
		a.board.Render(w)
	case router.PagePost:
		a.post.Render(w)
	case router.PageCreatePost:
		a.create.Render(w)
	case router.PageAdminUsers:
		a.users.Render(w)
	default:
		views.RenderHome(w, user)
	}
}
