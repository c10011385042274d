package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/communityhub/internal/common"
	"github.com/dmitrijs2005/communityhub/internal/logging"
	"github.com/dmitrijs2005/communityhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &models.User{ID: 1, Username: "alice"}
	bob   = &models.User{ID: 2, Username: "bob"}
	root  = &models.User{ID: 3, Username: "admin", IsAdmin: true}
)

func newPostService(t *testing.T) (*PostService, *fakeRepoManager, *fakeStore) {
	t.Helper()
	db, _ := newMockDB(t)
	rm := newFakeRepoManager()
	for _, u := range []*models.User{alice, bob, root} {
		cp := *u
		rm.users.byID[u.ID] = &cp
	}
	store := newFakeStore()
	s := NewPostService(db, rm, store, logging.Discard())
	s.newKey = func() string { return "fixed" }
	return s, rm, store
}

func TestCreatePost(t *testing.T) {
	s, rm, store := newPostService(t)

	p, err := s.Create(context.Background(), alice, NewPost{
		Title: " Hello ", Content: "World", Board: "free",
		Image: &Upload{Filename: "cat.png", Data: pngBytes},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "alice", p.Author)
	assert.Equal(t, "uploads/fixed.png", p.ImagePath)
	assert.Equal(t, "image/png", store.types["fixed.png"])
	assert.Contains(t, rm.posts.byID, p.ID)
}

func TestCreatePost_NoImage(t *testing.T) {
	s, _, store := newPostService(t)

	p, err := s.Create(context.Background(), alice, NewPost{
		Title: "t", Content: "c", Board: "notice", Image: &Upload{Filename: "empty"},
	})
	require.NoError(t, err)
	assert.Empty(t, p.ImagePath)
	assert.Empty(t, store.objects)
}

func TestCreatePost_Validation(t *testing.T) {
	s, _, store := newPostService(t)

	tests := []struct {
		name string
		in   NewPost
		msg  string
	}{
		{"no title", NewPost{Title: " ", Content: "c", Board: "free"}, "Title is required."},
		{"no content", NewPost{Title: "t", Content: "", Board: "free"}, "Content is required."},
		{"bad board", NewPost{Title: "t", Content: "c", Board: "qna"}, "Board must be one of: free, notice."},
		{"text file", NewPost{Title: "t", Content: "c", Board: "free", Image: &Upload{Data: []byte("plain text")}},
			"Invalid image type. Only JPG, PNG, GIF are allowed."},
		{"too large", NewPost{Title: "t", Content: "c", Board: "free", Image: &Upload{Data: make([]byte, common.MaxImageSize+1)}},
			"Image size should not exceed 5MB."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), alice, tt.in)
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
	assert.Empty(t, store.objects)
}

func TestCreatePost_ImageTypes(t *testing.T) {
	for name, tc := range map[string]struct {
		data []byte
		ext  string
	}{
		"gif":  {gifBytes, ".gif"},
		"jpeg": {jpegBytes, ".jpg"},
	} {
		t.Run(name, func(t *testing.T) {
			s, _, _ := newPostService(t)
			p, err := s.Create(context.Background(), alice, NewPost{Title: "t", Content: "c", Board: "free", Image: &Upload{Data: tc.data}})
			require.NoError(t, err)
			assert.Equal(t, "uploads/fixed"+tc.ext, p.ImagePath)
		})
	}
}

func TestCreatePost_RollsBackImage(t *testing.T) {
	s, rm, store := newPostService(t)
	rm.posts.createErr = errors.New("db down")

	_, err := s.Create(context.Background(), alice, NewPost{Title: "t", Content: "c", Board: "free", Image: &Upload{Data: pngBytes}})
	require.ErrorContains(t, err, "db down")
	assert.Equal(t, []string{"fixed.png"}, store.deleted)
	assert.Empty(t, store.objects)
}

func TestCreatePost_StoreError(t *testing.T) {
	s, rm, store := newPostService(t)
	store.putErr = errors.New("bucket gone")

	_, err := s.Create(context.Background(), alice, NewPost{Title: "t", Content: "c", Board: "free", Image: &Upload{Data: pngBytes}})
	require.ErrorContains(t, err, "bucket gone")
	assert.Empty(t, rm.posts.byID)
}

func TestListPosts(t *testing.T) {
	s, rm, _ := newPostService(t)
	rm.posts.byID[1] = &models.Post{ID: 1, Board: "free"}
	rm.posts.byID[2] = &models.Post{ID: 2, Board: "notice"}
	rm.posts.byID[3] = &models.Post{ID: 3, Board: "free"}

	got, err := s.List(context.Background(), "free")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)

	_, err = s.List(context.Background(), "other")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestGetPost_CountsViews(t *testing.T) {
	s, rm, _ := newPostService(t)
	db, mock := newMockDB(t)
	s.db = db
	rm.posts.byID[1] = &models.Post{ID: 1, Title: "t", AuthorID: alice.ID, Views: 4}

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	p, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Views)
	assert.Equal(t, "alice", p.Author)

	_, err = s.Get(context.Background(), 9)
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "Post not found.", err.Error())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePost(t *testing.T) {
	s, rm, store := newPostService(t)
	ctx := context.Background()
	rm.posts.byID[1] = &models.Post{ID: 1, AuthorID: alice.ID, ImagePath: "uploads/x.png"}
	rm.posts.byID[2] = &models.Post{ID: 2, AuthorID: alice.ID}

	err := s.Delete(ctx, bob, 1)
	require.ErrorIs(t, err, common.ErrorForbidden)
	assert.Contains(t, rm.posts.byID, int64(1))

	require.NoError(t, s.Delete(ctx, alice, 1))
	assert.Equal(t, []string{"x.png"}, store.deleted)

	require.NoError(t, s.Delete(ctx, root, 2))
	assert.Empty(t, rm.posts.byID)

	require.ErrorIs(t, s.Delete(ctx, alice, 1), common.ErrorNotFound)
}

func TestImage(t *testing.T) {
	s, _, store := newPostService(t)
	store.objects["a.gif"] = gifBytes
	store.types["a.gif"] = "image/gif"

	obj, err := s.Image(context.Background(), "a.gif")
	require.NoError(t, err)
	data, _ := io.ReadAll(obj.Body)
	assert.True(t, bytes.Equal(gifBytes, data))

	_, err = s.Image(context.Background(), "missing.gif")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Image(context.Background(), "../etc")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
