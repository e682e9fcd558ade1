package service

import (
	"context"
	"strings"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/repository"
	"github.com/local-avatar-api/internal/storage"
	"github.com/rs/zerolog"
)

// AvatarService defines the avatar operations exposed over HTTP and the CLI.
// *avatar.Resolver implements it.
type AvatarService interface {
	Render(ctx context.Context, ref avatar.UserRef, size int, def, alt string, opts avatar.Options) (string, bool)
	Resolve(ctx context.Context, ref avatar.UserRef, size int, def string, opts avatar.Options) avatar.Resolved
	URL(ctx context.Context, ref avatar.UserRef, size int, def string, opts avatar.Options) string
}

// RefService turns textual identity references into avatar.UserRef values
type RefService interface {
	Parse(ctx context.Context, raw string) (avatar.UserRef, error)
}

// StatsService reports record counts for the metrics endpoint
type StatsService interface {
	Counts(ctx context.Context) (map[string]int, error)
}

// MediaService maps attachments to image sources
type MediaService interface {
	ImageSrc(ctx context.Context, attachmentID int64, width, height int) (*models.ImageSource, error)
}

// Services holds all service interfaces
type Services struct {
	Avatar AvatarService
	Refs   RefService
	Stats  StatsService
	Media  MediaService

	// Hooks are the resolver's extension points. The metadata key hook has
	// already been consumed by the time NewServices returns.
	Hooks *avatar.Hooks
}

// NewServices creates all services and the avatar resolver on top of them
func NewServices(repos *repository.Repositories, urls storage.URLBuilder, cfg *config.Config, log zerolog.Logger) *Services {
	media := newMediaService(repos.Attachment, urls, log)
	options := newSiteOptions(repos.Option, cfg.Avatar, log)
	policy := NewPolicy(cfg.Avatar)

	h := avatar.NewHooks(log)
	if key := strings.TrimSpace(cfg.Avatar.MetadataKey); key != "" {
		h.MetadataKey.Register(func(string, struct{}) string { return key })
	}

	resolver := avatar.NewResolver(avatar.Deps{
		Registry: avatar.NewRegistry(h.MetadataKey),
		Hooks:    h,
		Users:    repos.User,
		Comments: repos.Comment,
		Media:    media,
		Options:  options,
		Policy:   policy,
		Log:      log,
	})

	return &Services{
		Avatar: resolver,
		Refs:   newRefService(repos.Article),
		Stats:  newStatsService(repos),
		Media:  media,
		Hooks:  h,
	}
}
