package avatar

import (
	"github.com/local-avatar-api/internal/hooks"
	"github.com/local-avatar-api/internal/models"
	"github.com/rs/zerolog"
)

// Hook point names, kept identical to the platform's filter names so
// extensions can be ported one to one.
const (
	HookMetadataKey       = "avatar-metadata-key"
	HookPreRender         = "pre_get_avatar"
	HookPreData           = "pre_get_avatar_data"
	HookDefaultAttachment = "default-avatar-attachment"
	HookURL               = "get_avatar_url"
	HookData              = "get_avatar_data"
	HookRender            = "get_avatar"
)

// PreRenderContext is passed to PreRender interceptors.
type PreRenderContext struct {
	User *models.User
	Args Args
}

// AttachmentContext is passed to DefaultAttachment interceptors.
type AttachmentContext struct {
	Args Args
	User *models.User
}

// URLContext is passed to URL interceptors.
type URLContext struct {
	User *models.User
	Args Args
}

// RenderContext is passed to Render interceptors. It carries the caller's
// original arguments next to the resolved user.
type RenderContext struct {
	Ref     UserRef
	User    *models.User
	Size    int
	Default string
	Alt     string
}

// Hooks bundles every extension point of the resolver.
type Hooks struct {
	// MetadataKey overrides the attribute holding the avatar attachment id.
	// It is consulted once, when the Registry is built.
	MetadataKey *hooks.Filter[string, struct{}]

	// PreRender short-circuits Render with complete markup.
	PreRender *hooks.Bypass[string, PreRenderContext]

	// PreData may inject a URL before any lookup happens. The chain stops at
	// the first interceptor that leaves a non-empty URL.
	PreData *hooks.Filter[Args, *models.User]

	// DefaultAttachment is seeded with the site default attachment id; 0 means none.
	DefaultAttachment *hooks.Filter[int64, AttachmentContext]

	URL    *hooks.Filter[string, URLContext]
	Data   *hooks.Filter[Args, *models.User]
	Render *hooks.Filter[string, RenderContext]
}

// NewHooks creates empty hook points.
func NewHooks(log zerolog.Logger) *Hooks {
	return &Hooks{
		MetadataKey:       hooks.NewFilter[string, struct{}](HookMetadataKey, log),
		PreRender:         hooks.NewBypass[string, PreRenderContext](HookPreRender, log),
		PreData:           hooks.NewFilter[Args, *models.User](HookPreData, log),
		DefaultAttachment: hooks.NewFilter[int64, AttachmentContext](HookDefaultAttachment, log),
		URL:               hooks.NewFilter[string, URLContext](HookURL, log),
		Data:              hooks.NewFilter[Args, *models.User](HookData, log),
		Render:            hooks.NewFilter[string, RenderContext](HookRender, log),
	}
}
