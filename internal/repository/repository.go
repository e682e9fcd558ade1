package repository

import (
	"context"

	"github.com/local-avatar-api/internal/database"
	"github.com/local-avatar-api/internal/models"
)

// UserRepository defines the interface for user and user metadata lookups
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetMeta(ctx context.Context, userID int64, key string) (string, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for content record lookups
type ArticleRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment lookups
type CommentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// AttachmentRepository defines the interface for media attachment lookups
type AttachmentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Attachment, error)
	Count(ctx context.Context) (int, error)
}

// OptionRepository defines the interface for site option lookups
type OptionRepository interface {
	Get(ctx context.Context, name string) (string, bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Article    ArticleRepository
	Comment    CommentRepository
	Attachment AttachmentRepository
	Option     OptionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepo(db),
		Article:    NewArticleRepo(db),
		Comment:    NewCommentRepo(db),
		Attachment: NewAttachmentRepo(db),
		Option:     NewOptionRepo(db),
	}
}
