package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/dbx"
	"github.com/dmitrijs2005/communityhub/internal/server/images"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	commentsrepo "github.com/dmitrijs2005/communityhub/internal/server/repositories/comments"
	postsrepo "github.com/dmitrijs2005/communityhub/internal/server/repositories/posts"
	usersrepo "github.com/dmitrijs2005/communityhub/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// --- in-memory repositories ---

type fakeUsers struct {
	byID   map[int64]*models.User
	nextID int64
	err    error
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Username == u.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, name string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == name {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePosts struct {
	users     *fakeUsers
	byID      map[int64]*models.Post
	nextID    int64
	createErr error
}

func (f *fakePosts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePosts) List(ctx context.Context, board string) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.byID {
		if p.Board == board {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePosts) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	if u, ok := f.users.byID[p.AuthorID]; ok {
		cp.Author = u.Username
	}
	return &cp, nil
}

func (f *fakePosts) IncrementViews(ctx context.Context, id int64) error {
	p, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Views++
	return nil
}

func (f *fakePosts) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePosts) ImagesByAuthor(ctx context.Context, authorID int64) ([]string, error) {
	var out []string
	for _, p := range f.byID {
		if p.AuthorID == authorID && p.ImagePath != "" {
			out = append(out, p.ImagePath)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeComments struct {
	posts  *fakePosts
	byID   map[int64]*models.Comment
	nextID int64
}

func (f *fakeComments) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if _, ok := f.posts.byID[c.PostID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeComments) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.byID {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeComments) Get(ctx context.Context, id int64) (*models.Comment, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeComments) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRepoManager struct {
	users    *fakeUsers
	posts    *fakePosts
	comments *fakeComments
}

func newFakeRepoManager() *fakeRepoManager {
	u := &fakeUsers{byID: map[int64]*models.User{}}
	p := &fakePosts{users: u, byID: map[int64]*models.Post{}}
	c := &fakeComments{posts: p, byID: map[int64]*models.Comment{}}
	return &fakeRepoManager{users: u, posts: p, comments: c}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.users }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository       { return m.posts }
func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository { return m.comments }

// --- image store ---

type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) Put(ctx context.Context, key, ct string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = data
	s.types[key] = ct
	return nil
}

func (s *fakeStore) Get(ctx context.Context, key string) (*images.Object, error) {
	if !images.ValidKey(key) {
		return nil, images.ErrInvalidKey
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &images.Object{Body: io.NopCloser(bytes.NewReader(data)), ContentType: s.types[key], Size: int64(len(data))}, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 32)...)
)
