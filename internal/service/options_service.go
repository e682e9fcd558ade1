package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/repository"
	"github.com/rs/zerolog"
)

// siteOptions reads avatar settings from the options table. Options that are
// not stored, or cannot be read, fall back to the configured values.
type siteOptions struct {
	options  repository.OptionRepository
	fallback config.AvatarConfig
	log      zerolog.Logger
}

func newSiteOptions(options repository.OptionRepository, fallback config.AvatarConfig, log zerolog.Logger) *siteOptions {
	return &siteOptions{
		options:  options,
		fallback: fallback,
		log:      log.With().Str("component", "site_options").Logger(),
	}
}

// NewSiteOptions creates the options-table backed site settings
func NewSiteOptions(options repository.OptionRepository, fallback config.AvatarConfig, log zerolog.Logger) avatar.SiteOptions {
	return newSiteOptions(options, fallback, log)
}

func (s *siteOptions) get(ctx context.Context, name string) (string, bool) {
	value, ok, err := s.options.Get(ctx, name)
	if err != nil {
		s.log.Warn().Err(err).Str("option", name).Msg("Failed to read site option, using configured value")
		return "", false
	}
	return value, ok
}

// ShowAvatars reports whether avatars are enabled for the site
func (s *siteOptions) ShowAvatars(ctx context.Context) bool {
	value, ok := s.get(ctx, models.OptionShowAvatars)
	if !ok {
		return s.fallback.ShowAvatars
	}
	return truthy(value)
}

// AvatarDefault returns the site's default scheme name
func (s *siteOptions) AvatarDefault(ctx context.Context) string {
	if value, ok := s.get(ctx, models.OptionAvatarDefault); ok {
		return value
	}
	return s.fallback.Default
}

// AvatarRating returns the site's maximum rating
func (s *siteOptions) AvatarRating(ctx context.Context) string {
	if value, ok := s.get(ctx, models.OptionAvatarRating); ok {
		return value
	}
	return s.fallback.Rating
}

// DefaultAttachment returns the site-wide default avatar attachment id, or 0
func (s *siteOptions) DefaultAttachment(ctx context.Context) int64 {
	value, ok := s.get(ctx, models.OptionAvatarDefaultAttachment)
	if !ok {
		return s.fallback.DefaultAttachment
	}
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// truthy follows the platform's option convention: empty, "0" and the
// usual negative words are false, everything else is true.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
