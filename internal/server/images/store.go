// Package images keeps the pictures attached to posts. Keys are flat file
// names ("<uuid><ext>"); the post row stores them under the "uploads/"
// prefix the HTTP layer serves them from.
package images

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/common"
)

// PathPrefix is prepended to keys to form the stored post image path.
const PathPrefix = "uploads/"

var ErrInvalidKey = errors.New("invalid image key")

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// ValidKey accepts a single path element without dots at the start.
func ValidKey(key string) bool {
	return key != "" && !strings.HasPrefix(key, ".") && !strings.ContainsAny(key, `/\`) && path.Clean(key) == key
}

// KeyFromPath strips PathPrefix. ok is false for anything else.
func KeyFromPath(p string) (string, bool) {
	key, found := strings.CutPrefix(p, PathPrefix)
	if !found || !ValidKey(key) {
		return "", false
	}
	return key, true
}

// contentTypeFor maps a stored key back to its MIME type.
func contentTypeFor(key string) string {
	ext := path.Ext(key)
	for ct, e := range common.AllowedImageTypes {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}
