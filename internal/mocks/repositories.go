package mocks

import (
	"context"
	"strings"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.UserRepository       = (*MockUserRepository)(nil)
	_ repository.ArticleRepository    = (*MockArticleRepository)(nil)
	_ repository.CommentRepository    = (*MockCommentRepository)(nil)
	_ repository.AttachmentRepository = (*MockAttachmentRepository)(nil)
	_ repository.OptionRepository     = (*MockOptionRepository)(nil)
	_ avatar.UserStore                = (*MockUserRepository)(nil)
	_ avatar.CommentStore             = (*MockCommentRepository)(nil)
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[int64]*models.User
	Meta  map[int64]map[string]string
	Err   error

	GetByIDCalls    int
	GetByEmailCalls int
	GetMetaCalls    int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[int64]*models.User),
		Meta:  make(map[int64]map[string]string),
	}
}

// Add stores a user and returns it
func (m *MockUserRepository) Add(user *models.User) *models.User {
	m.Users[user.ID] = user
	return user
}

// SetMeta stores a user attribute
func (m *MockUserRepository) SetMeta(userID int64, key, value string) {
	if m.Meta[userID] == nil {
		m.Meta[userID] = make(map[string]string)
	}
	m.Meta[userID][key] = value
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.GetByIDCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.GetByEmailCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetMeta(ctx context.Context, userID int64, key string) (string, error) {
	m.GetMetaCalls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Meta[userID][key], nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), m.Err
}

// Calls returns the total number of lookups made
func (m *MockUserRepository) Calls() int {
	return m.GetByIDCalls + m.GetByEmailCalls + m.GetMetaCalls
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[int64]*models.Article
	Err      error
	Calls    int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*models.Article)}
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles[id], nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), m.Err
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments map[int64]*models.Comment
	Err      error
	Calls    int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int64]*models.Comment)}
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Comments[id], nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), m.Err
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	Attachments map[int64]*models.Attachment
	Err         error
	Calls       int
}

func NewMockAttachmentRepository() *MockAttachmentRepository {
	return &MockAttachmentRepository{Attachments: make(map[int64]*models.Attachment)}
}

func (m *MockAttachmentRepository) GetByID(ctx context.Context, id int64) (*models.Attachment, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Attachments[id], nil
}

func (m *MockAttachmentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Attachments), m.Err
}

// MockOptionRepository is a mock implementation of OptionRepository
type MockOptionRepository struct {
	Options map[string]string
	Err     error
	Calls   int
}

func NewMockOptionRepository() *MockOptionRepository {
	return &MockOptionRepository{Options: make(map[string]string)}
}

func (m *MockOptionRepository) Get(ctx context.Context, name string) (string, bool, error) {
	m.Calls++
	if m.Err != nil {
		return "", false, m.Err
	}
	value, ok := m.Options[name]
	return value, ok, nil
}

// MockRepositories bundles one mock per repository
type MockRepositories struct {
	User       *MockUserRepository
	Article    *MockArticleRepository
	Comment    *MockCommentRepository
	Attachment *MockAttachmentRepository
	Option     *MockOptionRepository
}

func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		User:       NewMockUserRepository(),
		Article:    NewMockArticleRepository(),
		Comment:    NewMockCommentRepository(),
		Attachment: NewMockAttachmentRepository(),
		Option:     NewMockOptionRepository(),
	}
}

// Repositories exposes the mocks through the repository interfaces
func (m *MockRepositories) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:       m.User,
		Article:    m.Article,
		Comment:    m.Comment,
		Attachment: m.Attachment,
		Option:     m.Option,
	}
}
