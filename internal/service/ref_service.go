package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/repository"
)

// ErrInvalidRef is returned for a prefixed reference whose id is not a number
var ErrInvalidRef = errors.New("invalid avatar reference")

const (
	refPrefixComment = "comment:"
	refPrefixPost    = "post:"
	refPrefixEmail   = "email:"
)

// refService is the concrete implementation of RefService
type refService struct {
	articles repository.ArticleRepository
}

func newRefService(articles repository.ArticleRepository) *refService {
	return &refService{articles: articles}
}

// NewRefService creates a RefService that loads articles for post references
func NewRefService(articles repository.ArticleRepository) RefService {
	return newRefService(articles)
}

// Parse understands "comment:<id>", "post:<id>", "email:<addr>", numeric
// user ids and bare strings, which are treated as addresses.
// A post that does not exist still yields a Post reference; it resolves to
// no user like any other unknown identity.
func (s *refService) Parse(ctx context.Context, raw string) (avatar.UserRef, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case hasPrefixFold(raw, refPrefixComment):
		id, err := parseRefID(raw[len(refPrefixComment):])
		if err != nil {
			return nil, err
		}
		return avatar.CommentID(id), nil

	case hasPrefixFold(raw, refPrefixPost):
		id, err := parseRefID(raw[len(refPrefixPost):])
		if err != nil {
			return nil, err
		}
		article, err := s.articles.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load post %d: %w", id, err)
		}
		return avatar.Post{Article: article}, nil

	case hasPrefixFold(raw, refPrefixEmail):
		return avatar.Email(raw[len(refPrefixEmail):]), nil
	}

	return avatar.Ref(raw), nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func parseRefID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a numeric id", ErrInvalidRef, s)
	}
	return id, nil
}
