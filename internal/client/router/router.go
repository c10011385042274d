// Package router maps navigation paths to pages. Matching is done by a
// gorilla/mux route table so path variables are extracted the same way the
// server extracts them.
package router

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/communityhub/internal/client/guard"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/gorilla/mux"
)

type Page string

const (
	PageHome       Page = "home"
	PageLogin      Page = "login"
	PageSignup     Page = "signup"
	PageMyPage     Page = "my-page"
	PageAdminUsers Page = "admin-users"
	PageBoard      Page = "board"
	PageCreatePost Page = "create-post"
	PagePost       Page = "post"
)

type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

// Route is a resolved navigation target.
type Route struct {
	Page   Page
	Path   string
	Access Access
	Board  models.Board
	PostID int64
}

type Router struct {
	mux    *mux.Router
	access map[Page]Access
}

func New() *Router {
	r := &Router{mux: mux.NewRouter(), access: make(map[Page]Access)}

	r.handle("/", PageHome, Public)
	r.handle("/login", PageLogin, Public)
	r.handle("/signup", PageSignup, Public)
	r.handle("/my-page", PageMyPage, Authenticated)
	r.handle("/admin/users", PageAdminUsers, Admin)
	r.handle("/board/{board:free|notice}", PageBoard, Public)
	r.handle("/post/create/{board:free|notice}", PageCreatePost, Authenticated)
	r.handle("/post/{id:[0-9]+}", PagePost, Public)

	return r
}

func (r *Router) handle(tpl string, page Page, access Access) {
	r.mux.NewRoute().Path(tpl).Name(string(page))
	r.access[page] = access
}

// Match resolves path. Unknown paths resolve to the home page, the same as
// navigating to "/".
func (r *Router) Match(path string) Route {
	u, err := url.Parse(path)
	if err != nil {
		return r.home()
	}

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: u.Path}}
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.Route == nil {
		return r.home()
	}

	page := Page(m.Route.GetName())
	route := Route{Page: page, Path: u.Path, Access: r.access[page]}

	if b, ok := m.Vars["board"]; ok {
		route.Board = models.Board(b)
	}
	if id, ok := m.Vars["id"]; ok {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil || n <= 0 {
			return r.home()
		}
		route.PostID = n
	}
	return route
}

func (r *Router) home() Route {
	return Route{Page: PageHome, Path: guard.HomePath, Access: Public}
}

// Resolve matches path and applies the route's guard. The returned route is
// the one to render; from is set when the user was sent to log in.
func (r *Router) Resolve(ctx context.Context, s guard.Session, path string) (route Route, from string, err error) {
	const maxRedirects = 4

	route = r.Match(path)
	for i := 0; i < maxRedirects; i++ {
		var d guard.Decision
		switch route.Access {
		case Authenticated:
			d, err = guard.RequireAuth(ctx, s, route.Path)
		case Admin:
			d, err = guard.RequireAdmin(ctx, s, route.Path)
		default:
			return route, from, nil
		}
		if err != nil {
			return Route{}, "", err
		}
		if d.Allowed {
			return route, from, nil
		}
		if d.From != "" {
			from = d.From
		}
		route = r.Match(d.Redirect)
	}
	return route, from, nil
}
