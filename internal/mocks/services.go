package mocks

import (
	"context"
	"fmt"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/service"
)

// Verify interface compliance
var (
	_ avatar.MediaStore    = (*MockMediaStore)(nil)
	_ avatar.SiteOptions   = (*MockSiteOptions)(nil)
	_ avatar.Policy        = (*MockPolicy)(nil)
	_ service.MediaService = (*MockMediaStore)(nil)
)

// MockMediaStore serves every known attachment at the requested size from
// https://media.example/<id>-<w>x<h>.png
type MockMediaStore struct {
	Known map[int64]bool
	Err   error
	Calls int
}

func NewMockMediaStore(ids ...int64) *MockMediaStore {
	m := &MockMediaStore{Known: make(map[int64]bool)}
	for _, id := range ids {
		m.Known[id] = true
	}
	return m
}

// MediaURL returns the URL the mock produces for id at w x h
func MediaURL(id int64, w, h int) string {
	return fmt.Sprintf("https://media.example/%d-%dx%d.png", id, w, h)
}

func (m *MockMediaStore) ImageSrc(ctx context.Context, attachmentID int64, width, height int) (*models.ImageSource, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if !m.Known[attachmentID] {
		return nil, nil
	}
	return &models.ImageSource{
		URL:     MediaURL(attachmentID, width, height),
		Width:   width,
		Height:  height,
		Resized: true,
	}, nil
}

// MockSiteOptions is a mock implementation of avatar.SiteOptions
type MockSiteOptions struct {
	Show       bool
	Default    string
	Rating     string
	Attachment int64
	Calls      int

	ShowCalls       int
	AttachmentCalls int
}

// NewMockSiteOptions returns options with avatars shown, the mystery default
// and rating G.
func NewMockSiteOptions() *MockSiteOptions {
	return &MockSiteOptions{Show: true, Default: "mystery", Rating: "G"}
}

func (m *MockSiteOptions) ShowAvatars(ctx context.Context) bool {
	m.Calls++
	m.ShowCalls++
	return m.Show
}

func (m *MockSiteOptions) AvatarDefault(ctx context.Context) string {
	m.Calls++
	return m.Default
}

func (m *MockSiteOptions) AvatarRating(ctx context.Context) string {
	m.Calls++
	return m.Rating
}

func (m *MockSiteOptions) DefaultAttachment(ctx context.Context) int64 {
	m.Calls++
	m.AttachmentCalls++
	return m.Attachment
}

// MockPolicy is a mock implementation of avatar.Policy
type MockPolicy struct {
	Lazy         bool
	CommentTypes map[string]bool
	Calls        int
}

// NewMockPolicy returns a policy with lazy loading on and only regular
// comments eligible for avatars.
func NewMockPolicy() *MockPolicy {
	return &MockPolicy{
		Lazy:         true,
		CommentTypes: map[string]bool{models.CommentTypeComment: true},
	}
}

func (m *MockPolicy) LazyLoadingEnabled(tag, context string) bool {
	m.Calls++
	return m.Lazy && tag == "img"
}

func (m *MockPolicy) IsAvatarCommentType(commentType string) bool {
	m.Calls++
	return m.CommentTypes[commentType]
}
