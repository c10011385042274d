package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	"github.com/google/uuid"
)

type ctxKey string

const (
	userKey      ctxKey = "user"
	requestIDKey ctxKey = "requestID"
)

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestIDMiddleware echoes X-Request-ID (generating one when absent) and
// logs one line per request.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		s.log(ctx).Info(ctx, "request", "method", r.Method, "path", r.URL.Path, "status", rec.status)
	})
}

func (s *Server) log(ctx context.Context) logging.Logger {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return s.logger.With("request_id", id)
	}
	return s.logger
}

func currentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func (s *Server) authenticate(r *http.Request) (*models.User, error) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		return nil, errNotAuthenticated
	}
	username, password, err := common.ParseBasicAuthHeader(header)
	if err != nil {
		return nil, errBadCredentials
	}
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	u, err := s.users.Authenticate(r.Context(), username, pw)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	return u, nil
}

// requireUser resolves the Basic credential and stores the user in the
// request context.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.authenticate(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	}
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireUser(func(w http.ResponseWriter, r *http.Request) {
		if !currentUser(r.Context()).IsAdmin {
			writeDetail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}
