package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/service"
	"github.com/rs/zerolog"
)

// AvatarHandler handles avatar endpoints
type AvatarHandler struct {
	services *service.Services
	timeout  time.Duration
	log      zerolog.Logger
}

// NewAvatarHandler creates a new AvatarHandler
func NewAvatarHandler(services *service.Services, timeout time.Duration, log zerolog.Logger) *AvatarHandler {
	return &AvatarHandler{
		services: services,
		timeout:  timeout,
		log:      log.With().Str("handler", "avatar").Logger(),
	}
}

// avatarQuery holds the render arguments accepted as query parameters.
// Everything is read as text so malformed values degrade to defaults
// instead of failing the request.
type avatarQuery struct {
	Size         string   `form:"size"`
	Default      string   `form:"default"`
	Alt          string   `form:"alt"`
	Width        string   `form:"width"`
	Height       string   `form:"height"`
	Rating       string   `form:"rating"`
	ForceDefault string   `form:"force_default"`
	ForceDisplay string   `form:"force_display"`
	Class        []string `form:"class"`
	Loading      string   `form:"loading"`
}

func (q avatarQuery) size() int {
	return avatar.SizeFrom(q.Size)
}

func (q avatarQuery) options() avatar.Options {
	return avatar.Options{
		Width:        atoi(q.Width),
		Height:       atoi(q.Height),
		Rating:       q.Rating,
		ForceDefault: parseBool(q.ForceDefault),
		ForceDisplay: parseBool(q.ForceDisplay),
		Class:        q.Class,
		Loading:      avatar.ParseLoading(q.Loading),
	}
}

// request binds the path reference and query arguments. It writes the error
// response itself and returns false when the request cannot be served.
func (h *AvatarHandler) request(c *gin.Context) (avatar.UserRef, avatarQuery, bool) {
	var q avatarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return nil, q, false
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	ref, err := h.services.Refs.Parse(ctx, c.Param("ref"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRef) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, q, false
		}
		h.log.Error().Err(err).Str("ref", c.Param("ref")).Msg("Failed to parse avatar reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve reference"})
		return nil, q, false
	}
	return ref, q, true
}

// GetAvatar handles GET /v1/avatars/:ref
// Responds with the <img> markup, or 404 when no avatar should be shown
func (h *AvatarHandler) GetAvatar(c *gin.Context) {
	ref, q, ok := h.request(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	markup, found := h.services.Avatar.Render(ctx, ref, q.size(), q.Default, q.Alt, q.options())
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no avatar"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

// GetAvatarData handles GET /v1/avatars/:ref/data
// Responds with the resolved arguments, including url and found_avatar
func (h *AvatarHandler) GetAvatarData(c *gin.Context) {
	ref, q, ok := h.request(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	resolved := h.services.Avatar.Resolve(ctx, ref, q.size(), q.Default, q.options())

	h.log.Debug().
		Str("ref", c.Param("ref")).
		Bool("found_avatar", resolved.FoundAvatar).
		Bool("has_url", resolved.URL != "").
		Msg("Resolved avatar data")

	c.JSON(http.StatusOK, resolved)
}

// GetAvatarURL handles GET /v1/avatars/:ref/url
// Redirects to the avatar image, or 404 when none resolves
func (h *AvatarHandler) GetAvatarURL(c *gin.Context) {
	ref, q, ok := h.request(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	url := h.services.Avatar.URL(ctx, ref, q.size(), q.Default, q.options())
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no avatar"})
		return
	}

	c.Redirect(http.StatusFound, url)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
