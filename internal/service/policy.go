package service

import (
	"github.com/local-avatar-api/internal/config"
)

// Policy answers platform questions from static configuration
type Policy struct {
	lazyLoading  bool
	commentTypes map[string]struct{}
}

// NewPolicy creates a Policy from the avatar configuration
func NewPolicy(cfg config.AvatarConfig) *Policy {
	types := make(map[string]struct{}, len(cfg.CommentTypes))
	for _, t := range cfg.CommentTypes {
		types[t] = struct{}{}
	}
	return &Policy{lazyLoading: cfg.LazyLoading, commentTypes: types}
}

// LazyLoadingEnabled reports whether tag rendered in context gets a lazy
// loading hint. Only img tags are ever lazy loaded.
func (p *Policy) LazyLoadingEnabled(tag, context string) bool {
	return p.lazyLoading && tag == "img"
}

// IsAvatarCommentType reports whether comments of commentType show avatars
func (p *Policy) IsAvatarCommentType(commentType string) bool {
	_, ok := p.commentTypes[commentType]
	return ok
}
