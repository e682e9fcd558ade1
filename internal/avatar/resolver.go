package avatar

import (
	"context"
	"strconv"
	"strings"

	"github.com/local-avatar-api/internal/models"
	"github.com/rs/zerolog"
)

// gravatarHashDomain marks the legacy gravatar-hash address form.
const gravatarHashDomain = "@md5.gravatar.com"

// UserStore looks up accounts and their attributes.
// Implementations return (nil, nil) or ("", nil) on a miss.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetMeta(ctx context.Context, userID int64, key string) (string, error)
}

// CommentStore looks up comments by id.
type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
}

// MediaStore maps an attachment id and target dimensions to an image source.
// A nil source with a nil error is a miss.
type MediaStore interface {
	ImageSrc(ctx context.Context, attachmentID int64, width, height int) (*models.ImageSource, error)
}

// SiteOptions exposes the site-level avatar settings.
type SiteOptions interface {
	ShowAvatars(ctx context.Context) bool
	AvatarDefault(ctx context.Context) string
	AvatarRating(ctx context.Context) string
	DefaultAttachment(ctx context.Context) int64
}

// Policy carries platform decisions the resolver does not own.
type Policy interface {
	LazyLoadingEnabled(tag, context string) bool
	IsAvatarCommentType(commentType string) bool
}

// Deps are the collaborators of a Resolver.
type Deps struct {
	Registry *Registry
	Hooks    *Hooks
	Users    UserStore
	Comments CommentStore
	Media    MediaStore
	Options  SiteOptions
	Policy   Policy
	Log      zerolog.Logger
}

// Resolved is the outcome of a data resolution. An empty URL means no avatar.
type Resolved struct {
	URL         string `json:"url,omitempty"`
	FoundAvatar bool   `json:"found_avatar"`
	Args        Args   `json:"args"`
}

// Resolver resolves and renders avatars. It is safe for concurrent use as
// long as its collaborators are.
type Resolver struct {
	registry *Registry
	hooks    *Hooks
	users    UserStore
	comments CommentStore
	media    MediaStore
	options  SiteOptions
	policy   Policy
	log      zerolog.Logger
}

// NewResolver creates a Resolver. A nil Hooks gets an empty set and a nil
// Registry gets one built from those hooks.
func NewResolver(d Deps) *Resolver {
	h := d.Hooks
	if h == nil {
		h = NewHooks(d.Log)
	}
	reg := d.Registry
	if reg == nil {
		reg = NewRegistry(h.MetadataKey)
	}
	return &Resolver{
		registry: reg,
		hooks:    h,
		users:    d.Users,
		comments: d.Comments,
		media:    d.Media,
		options:  d.Options,
		policy:   d.Policy,
		log:      d.Log.With().Str("component", "avatar").Logger(),
	}
}

// Hooks returns the resolver's extension points.
func (r *Resolver) Hooks() *Hooks {
	return r.hooks
}

// User resolves ref to an account, or nil for an anonymous avatar.
// A comment id is replaced by its comment before any other rule applies.
func (r *Resolver) User(ctx context.Context, ref UserRef) *models.User {
	if id, ok := ref.(CommentID); ok {
		comment, err := r.comments.GetByID(ctx, absID(int64(id)))
		if err != nil {
			r.log.Debug().Err(err).Int64("comment_id", int64(id)).Msg("Comment lookup failed")
			return nil
		}
		if comment == nil {
			return nil
		}
		ref = CommentRecord{Comment: comment}
	}

	switch v := ref.(type) {
	case UserRecord:
		return v.User
	case UserID:
		return r.userByID(ctx, absID(int64(v)))
	case Email:
		addr := string(v)
		if strings.Index(addr, gravatarHashDomain) <= 0 {
			return nil
		}
		return r.userByEmail(ctx, addr)
	case Post:
		if v.Article == nil {
			return nil
		}
		return r.userByID(ctx, v.Article.AuthorID)
	case CommentRecord:
		return r.commentAuthor(ctx, v.Comment)
	default:
		return nil
	}
}

func (r *Resolver) commentAuthor(ctx context.Context, c *models.Comment) *models.User {
	if c == nil || !r.policy.IsAvatarCommentType(c.CommentType()) {
		return nil
	}
	if c.UserID > 0 {
		if u := r.userByID(ctx, c.UserID); u != nil {
			return u
		}
	}
	if c.AuthorEmail != "" {
		return r.userByEmail(ctx, c.AuthorEmail)
	}
	return nil
}

func (r *Resolver) userByID(ctx context.Context, id int64) *models.User {
	if id <= 0 {
		return nil
	}
	u, err := r.users.GetByID(ctx, id)
	if err != nil {
		r.log.Debug().Err(err).Int64("user_id", id).Msg("User lookup failed")
		return nil
	}
	return u
}

func (r *Resolver) userByEmail(ctx context.Context, email string) *models.User {
	u, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		r.log.Debug().Err(err).Str("email", email).Msg("User lookup by email failed")
		return nil
	}
	return u
}

// Normalize builds Args for a render call, reading only the site defaults
// the caller left unset.
func (r *Resolver) Normalize(ctx context.Context, size int, def, alt string, opts Options) Args {
	var site SiteDefaults
	if def == "" {
		site.Default = r.options.AvatarDefault(ctx)
	}
	if opts.Rating == "" {
		site.Rating = r.options.AvatarRating(ctx)
	}
	if opts.Loading == LoadingUnset {
		site.LazyLoading = r.policy.LazyLoadingEnabled("img", HookRender)
	}
	return Normalize(size, def, alt, opts, site)
}

// Data runs the resolution and fallback algorithm for an already resolved
// user. FoundAvatar is true only when the user's own attachment was used.
func (r *Resolver) Data(ctx context.Context, user *models.User, args Args) Resolved {
	args = r.hooks.PreData.ApplyUntil(args.Clone(), user, hasURL)

	if args.URL == "" {
		var id int64
		if user != nil && !args.ForceDefault {
			id = r.customAttachment(ctx, user)
			if id > 0 {
				args.FoundAvatar = true
			}
		}

		if id <= 0 {
			id = r.hooks.DefaultAttachment.Apply(r.options.DefaultAttachment(ctx), AttachmentContext{
				Args: args.Clone(),
				User: user,
			})
		}

		if id > 0 {
			if src := r.imageSrc(ctx, id, args.Width, args.Height); src != "" {
				args.URL = r.hooks.URL.Apply(src, URLContext{User: user, Args: args.Clone()})
			}
		}
	}

	args = r.hooks.Data.Apply(args, user)

	return Resolved{
		URL:         args.URL,
		FoundAvatar: args.FoundAvatar,
		Args:        args,
	}
}

// Resolve normalizes the arguments and resolves avatar data for ref. Unlike
// Render it ignores the site's show-avatars switch.
func (r *Resolver) Resolve(ctx context.Context, ref UserRef, size int, def string, opts Options) Resolved {
	user := r.User(ctx, ref)
	return r.Data(ctx, user, r.Normalize(ctx, size, def, "", opts))
}

// URL returns the avatar URL for ref, or "" when none resolves.
func (r *Resolver) URL(ctx context.Context, ref UserRef, size int, def string, opts Options) string {
	return r.Resolve(ctx, ref, size, def, opts).URL
}

func (r *Resolver) customAttachment(ctx context.Context, user *models.User) int64 {
	key := r.registry.MetadataKey()
	raw, err := r.users.GetMeta(ctx, user.ID, key)
	if err != nil {
		r.log.Debug().Err(err).Int64("user_id", user.ID).Str("meta_key", key).Msg("Avatar metadata lookup failed")
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func (r *Resolver) imageSrc(ctx context.Context, id int64, width, height int) string {
	src, err := r.media.ImageSrc(ctx, id, width, height)
	if err != nil {
		r.log.Debug().Err(err).Int64("attachment_id", id).Msg("Attachment image lookup failed")
		return ""
	}
	if src == nil {
		return ""
	}
	return src.URL
}

func hasURL(a Args) bool {
	return a.URL != ""
}
