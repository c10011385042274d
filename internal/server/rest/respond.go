package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/server/services"
)

var (
	errNotAuthenticated = errors.New("not authenticated")
	errBadCredentials   = errors.New("invalid credentials")
)

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeValidation(w http.ResponseWriter, loc, field, msg string) {
	writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{
		Loc:  []string{loc, field},
		Msg:  msg,
		Type: "value_error",
	}})
}

// writeError maps service errors to status codes. Anything unrecognised is
// logged and reported as 500 without details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errNotAuthenticated):
		w.Header().Set("WWW-Authenticate", `Basic realm="communityhub"`)
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	case errors.Is(err, errBadCredentials):
		w.Header().Set("WWW-Authenticate", `Basic realm="communityhub"`)
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	var e *services.Error
	if errors.As(err, &e) {
		switch {
		case errors.Is(e.Kind, common.ErrorValidation):
			writeValidation(w, "body", e.Field, e.Msg)
		case errors.Is(e.Kind, common.ErrorAlreadyExists):
			writeDetail(w, http.StatusBadRequest, e.Msg)
		case errors.Is(e.Kind, common.ErrorForbidden):
			writeDetail(w, http.StatusForbidden, e.Msg)
		case errors.Is(e.Kind, common.ErrorNotFound):
			writeDetail(w, http.StatusNotFound, e.Msg)
		case errors.Is(e.Kind, common.ErrorUnauthorized):
			writeDetail(w, http.StatusUnauthorized, e.Msg)
		default:
			writeDetail(w, http.StatusBadRequest, e.Msg)
		}
		return
	}

	s.log(r.Context()).Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}
