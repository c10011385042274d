package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	newRequestID func() string
}

// NewHTTPClient builds a client for the API at baseURL. A zero timeout leaves
// the transport default in place.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: timeout},
		logger:       logger.With("module", "api_client"),
		newRequestID: uuid.NewString,
	}, nil
}

// BaseURL is the API root without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	authHeader  string
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return &APIError{Message: err.Error(), kind: ErrServer, cause: err}
	}

	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.authHeader != "" {
		req.Header.Set(common.AuthorizationHeaderName, r.authHeader)
	}

	log := c.logger.With("method", r.method, "path", r.path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return &APIError{Message: "Request cancelled.", kind: ErrUnavailable, cause: err}
		}
		log.Error(ctx, "network error", "error", err)
		return newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newStatusError(resp.StatusCode, body)
		log.Error(ctx, "api error", "status", resp.StatusCode, "detail", apiErr.Message)
		return apiErr
	}

	log.Debug(ctx, "api call ok", "status", resp.StatusCode)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		log.Error(ctx, "malformed response", "error", err)
		return &APIError{Status: resp.StatusCode, Message: "Unexpected response from server.", kind: ErrServer, cause: err}
	}
	return nil
}

func formBody(values url.Values) (io.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

func (c *HTTPClient) Signup(ctx context.Context, username string, password []byte) (*models.SignupResult, error) {
	body, ct := formBody(url.Values{"username": {username}, "password": {string(password)}})

	var res models.SignupResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/signup", body: body, contentType: ct}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, authHeader string) (*models.LoginResult, error) {
	var res models.LoginResult
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/login",
		body:        strings.NewReader("{}"),
		contentType: "application/json",
		authHeader:  authHeader,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteMyAccount(ctx context.Context, authHeader string) error {
	var res models.Success
	return c.do(ctx, request{method: http.MethodDelete, path: "/users/me", authHeader: authHeader}, &res)
}

func (c *HTTPClient) ListUsers(ctx context.Context, authHeader string) ([]models.AdminUser, error) {
	var users []models.AdminUser
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/users", authHeader: authHeader}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID int64, authHeader string) error {
	var res models.Success
	return c.do(ctx, request{
		method:     http.MethodDelete,
		path:       fmt.Sprintf("/admin/users/%d", userID),
		authHeader: authHeader,
	}, &res)
}

func (c *HTTPClient) CreatePost(ctx context.Context, post models.NewPost, authHeader string) (int64, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, field := range [][2]string{{"title", post.Title}, {"content", post.Content}, {"board", string(post.Board)}} {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return 0, &APIError{Message: err.Error(), kind: ErrServer, cause: err}
		}
	}

	if post.Image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, post.Image.Name))
		h.Set("Content-Type", post.Image.ContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return 0, &APIError{Message: err.Error(), kind: ErrServer, cause: err}
		}
		if _, err := part.Write(post.Image.Data); err != nil {
			return 0, &APIError{Message: err.Error(), kind: ErrServer, cause: err}
		}
	}

	if err := mw.Close(); err != nil {
		return 0, &APIError{Message: err.Error(), kind: ErrServer, cause: err}
	}

	var res models.Created
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/posts",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		authHeader:  authHeader,
	}, &res)
	if err != nil {
		return 0, err
	}
	return res.ID, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, board models.Board) ([]models.PostSummary, error) {
	var posts []models.PostSummary
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/posts",
		query:  url.Values{"board": {string(board)}},
	}, &posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, postID int64) (*models.PostDetail, error) {
	var post models.PostDetail
	if err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/posts/%d", postID)}, &post); err != nil {
		return nil, err
	}
	post.Image = c.absoluteImageURL(post.Image)
	return &post, nil
}

// absoluteImageURL turns the stored image path into an address the
// renderer can fetch. Values that already carry a scheme are kept.
func (c *HTTPClient) absoluteImageURL(image string) string {
	if image == "" {
		return ""
	}
	if u, err := url.Parse(image); err == nil && u.IsAbs() {
		return image
	}
	return c.baseURL + "/" + strings.TrimLeft(image, "/")
}

func (c *HTTPClient) DeletePost(ctx context.Context, postID int64, authHeader string) error {
	var res models.Success
	return c.do(ctx, request{
		method:     http.MethodDelete,
		path:       fmt.Sprintf("/posts/%d", postID),
		authHeader: authHeader,
	}, &res)
}

func (c *HTTPClient) AddComment(ctx context.Context, postID int64, content string, authHeader string) (int64, error) {
	body, ct := formBody(url.Values{"content": {content}})

	var res models.Created
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/posts/%d/comments", postID),
		body:        body,
		contentType: ct,
		authHeader:  authHeader,
	}, &res)
	if err != nil {
		return 0, err
	}
	return res.ID, nil
}

func (c *HTTPClient) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/posts/%d/comments", postID)}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, commentID int64, authHeader string) error {
	var res models.Success
	return c.do(ctx, request{
		method:     http.MethodDelete,
		path:       fmt.Sprintf("/comments/%d", commentID),
		authHeader: authHeader,
	}, &res)
}
