package service

import (
	"context"
	"fmt"

	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/repository"
	"github.com/local-avatar-api/internal/storage"
	"github.com/rs/zerolog"
)

// mediaService is the concrete implementation of MediaService
type mediaService struct {
	attachments repository.AttachmentRepository
	urls        storage.URLBuilder
	log         zerolog.Logger
}

func newMediaService(attachments repository.AttachmentRepository, urls storage.URLBuilder, log zerolog.Logger) *mediaService {
	return &mediaService{
		attachments: attachments,
		urls:        urls,
		log:         log.With().Str("component", "media").Logger(),
	}
}

// NewMediaService creates a MediaService over the given repository and URL builder
func NewMediaService(attachments repository.AttachmentRepository, urls storage.URLBuilder, log zerolog.Logger) MediaService {
	return newMediaService(attachments, urls, log)
}

// ImageSrc returns the smallest variant of the attachment that covers
// width x height, or the original when no variant is large enough.
// Missing and non-image attachments are a miss (nil, nil).
func (s *mediaService) ImageSrc(ctx context.Context, attachmentID int64, width, height int) (*models.ImageSource, error) {
	att, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if att == nil || !att.IsImage() {
		return nil, nil
	}

	key, w, h, resized := pickVariant(att, width, height)

	url, err := s.urls.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL for attachment %d: %w", attachmentID, err)
	}

	s.log.Debug().
		Int64("attachment_id", attachmentID).
		Str("key", key).
		Bool("resized", resized).
		Msg("Resolved attachment image")

	return &models.ImageSource{URL: url, Width: w, Height: h, Resized: resized}, nil
}

// pickVariant relies on Sizes being ordered by area, smallest first.
func pickVariant(att *models.Attachment, width, height int) (key string, w, h int, resized bool) {
	for _, size := range att.Sizes {
		if size.ObjectKey == "" {
			continue
		}
		if size.Width >= width && size.Height >= height {
			return size.ObjectKey, size.Width, size.Height, true
		}
	}
	return att.ObjectKey, att.Width, att.Height, false
}
