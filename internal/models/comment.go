package models

import (
	"time"
)

// CommentTypeComment is the type of a regular comment. An empty type is
// treated the same way.
const CommentTypeComment = "comment"

// Comment represents a comment on an article, left by a user or a guest
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	ArticleID   int64     `json:"article_id" db:"article_id"`
	UserID      int64     `json:"user_id" db:"user_id"` // 0 for guests
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email" db:"author_email"`
	Type        string    `json:"type" db:"type"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CommentType returns the comment type, defaulting to CommentTypeComment
func (c *Comment) CommentType() string {
	if c.Type == "" {
		return CommentTypeComment
	}
	return c.Type
}
