// Package rest exposes the CommunityHub services over HTTP/JSON.
//
// Routes:
//
//	POST   /signup                  form username, password
//	POST   /login                   Basic credential
//	DELETE /users/me                Basic credential
//	GET    /admin/users             Basic credential, admin
//	DELETE /admin/users/{id}        Basic credential, admin
//	GET    /posts?board=            public
//	POST   /posts                   Basic credential, multipart title, content, board, file
//	GET    /posts/{id}              public
//	DELETE /posts/{id}              Basic credential, owner or admin
//	GET    /posts/{id}/comments     public
//	POST   /posts/{id}/comments     Basic credential, form content
//	DELETE /comments/{id}           Basic credential, owner or admin
//	GET    /uploads/{key}           public
//
// Errors are JSON objects with a "detail" member: a string, or for
// validation failures (422) a list of {loc, msg, type}.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/dmitrijs2005/communityhub/internal/server/images"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	"github.com/dmitrijs2005/communityhub/internal/server/services"
	"github.com/gorilla/mux"
)

type Users interface {
	Signup(ctx context.Context, username string, password []byte) (*models.User, error)
	Authenticate(ctx context.Context, username string, password []byte) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
	DeleteByAdmin(ctx context.Context, actor *models.User, id int64) error
}

type Posts interface {
	Create(ctx context.Context, author *models.User, in services.NewPost) (*models.Post, error)
	List(ctx context.Context, board string) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
	Image(ctx context.Context, key string) (*images.Object, error)
}

type Comments interface {
	Add(ctx context.Context, actor *models.User, postID int64, content string) (*models.Comment, error)
	List(ctx context.Context, postID int64) ([]models.Comment, error)
	Delete(ctx context.Context, actor *models.User, id int64) error
}

const shutdownTimeout = 10 * time.Second

type Server struct {
	address       string
	users         Users
	posts         Posts
	comments      Comments
	logger        logging.Logger
	maxUploadSize int64
}

func NewServer(address string, l logging.Logger, us Users, ps Posts, cs Comments, maxUploadSize int64) *Server {
	return &Server{
		address:       address,
		users:         us,
		posts:         ps,
		comments:      cs,
		logger:        l.With("module", "http_server"),
		maxUploadSize: maxUploadSize,
	}
}

// Handler builds the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware)

	r.HandleFunc("/signup", s.signup).Methods(http.MethodPost)
	r.HandleFunc("/login", s.requireUser(s.login)).Methods(http.MethodPost)
	r.HandleFunc("/users/me", s.requireUser(s.deleteMe)).Methods(http.MethodDelete)

	r.HandleFunc("/admin/users", s.requireAdmin(s.listUsers)).Methods(http.MethodGet)
	r.HandleFunc("/admin/users/{id:[0-9]+}", s.requireAdmin(s.deleteUser)).Methods(http.MethodDelete)

	r.HandleFunc("/posts", s.listPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts", s.requireUser(s.createPost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}", s.getPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", s.requireUser(s.deletePost)).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id:[0-9]+}/comments", s.listComments).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/comments", s.requireUser(s.addComment)).Methods(http.MethodPost)
	r.HandleFunc("/comments/{id:[0-9]+}", s.requireUser(s.deleteComment)).Methods(http.MethodDelete)

	r.HandleFunc("/uploads/{key}", s.image).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
