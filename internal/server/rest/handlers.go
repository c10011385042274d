package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/server/services"
	"github.com/gorilla/mux"
)

type successResponse struct {
	Success bool `json:"success"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := []byte(r.FormValue("password"))
	defer common.WipeByteArray(password)

	switch {
	case username == "":
		writeValidation(w, "body", "username", "Field required")
		return
	case len(password) == 0:
		writeValidation(w, "body", "password", "Field required")
		return
	}

	u, err := s.users.Signup(r.Context(), username, password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log(r.Context()).Info(r.Context(), "user registered", "user_id", u.ID)

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "username": u.Username})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": newUserDTO(u)})
}

func (s *Server) deleteMe(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	if err := s.users.Delete(r.Context(), u.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]userDTO, 0, len(users))
	for i := range users {
		out = append(out, newUserDTO(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found.")
		return
	}
	if err := s.users.DeleteByAdmin(r.Context(), currentUser(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	board := r.URL.Query().Get("board")
	if board == "" {
		board = "free"
	}
	posts, err := s.posts.List(r.Context(), board)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]postSummaryDTO, 0, len(posts))
	for i := range posts {
		out = append(out, newPostSummary(&posts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		writeDetail(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	in := services.NewPost{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Board:   r.FormValue("board"),
	}

	f, hdr, err := r.FormFile("file")
	switch {
	case err == nil:
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, common.MaxImageSize+1))
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid form data.")
			return
		}
		in.Image = &services.Upload{Filename: hdr.Filename, Data: data}
	case !errors.Is(err, http.ErrMissingFile):
		writeDetail(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	p, err := s.posts.Create(r.Context(), currentUser(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, createdResponse{ID: p.ID})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	p, err := s.posts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPostDetail(p))
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	if err := s.posts.Delete(r.Context(), currentUser(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	comments, err := s.comments.List(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]commentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentDTO(&comments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	content := r.FormValue("content")
	if content == "" {
		writeValidation(w, "body", "content", "Field required")
		return
	}
	c, err := s.comments.Add(r.Context(), currentUser(r.Context()), id, content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, createdResponse{ID: c.ID})
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	if err := s.comments.Delete(r.Context(), currentUser(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	obj, err := s.posts.Image(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		s.log(r.Context()).Warn(r.Context(), "image copy interrupted", "error", err)
	}
}
