package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyKey is returned when an attachment has no object key.
var ErrEmptyKey = errors.New("empty object key")

// PublicURLBuilder serves objects from a public base URL, such as a CDN or
// an uploads directory behind the web server.
type PublicURLBuilder struct {
	base string
}

// NewPublicURLBuilder creates a PublicURLBuilder. A trailing slash on base is
// ignored.
func NewPublicURLBuilder(base string) *PublicURLBuilder {
	return &PublicURLBuilder{base: strings.TrimRight(base, "/")}
}

// URL joins the base URL and the escaped key.
func (b *PublicURLBuilder) URL(_ context.Context, key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}

	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return b.base + "/" + strings.Join(segments, "/"), nil
}
