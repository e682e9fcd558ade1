package avatar

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var loadingAttrPattern = regexp.MustCompile(`\bloading\s*=`)

// Render resolves ref and returns <img> markup. The boolean is false when no
// avatar should be shown: avatars are disabled for the site, nothing resolved
// to a URL, or the get_avatar filter emptied the markup.
func (r *Resolver) Render(ctx context.Context, ref UserRef, size int, def, alt string, opts Options) (string, bool) {
	user := r.User(ctx, ref)
	args := r.Normalize(ctx, size, def, alt, opts)

	markup, bypassed := r.hooks.PreRender.Invoke(PreRenderContext{User: user, Args: args.Clone()})
	if !bypassed {
		if !args.ForceDisplay && !r.options.ShowAvatars(ctx) {
			return "", false
		}

		url2x := r.Data(ctx, user, args.Scaled(2)).URL
		resolved := r.Data(ctx, user, args)
		if resolved.URL == "" {
			return "", false
		}

		markup = buildMarkup(resolved.Args, url2x)
	}

	markup = r.hooks.Render.Apply(markup, RenderContext{
		Ref:     ref,
		User:    user,
		Size:    size,
		Default: def,
		Alt:     alt,
	})
	if markup == "" {
		return "", false
	}
	return markup, true
}

// GetAvatar mirrors the platform avatar function over r: idOrEmail is
// anything Ref understands and size anything SizeFrom understands.
func GetAvatar(ctx context.Context, r *Resolver, idOrEmail any, size any, def, alt string, opts Options) (string, bool) {
	return r.Render(ctx, Ref(idOrEmail), SizeFrom(size), def, alt, opts)
}

// ClassList returns the CSS classes for resolved args.
func ClassList(args Args) []string {
	class := []string{"avatar", "avatar-" + strconv.Itoa(args.Size), "photo"}
	if !args.FoundAvatar || args.ForceDefault {
		class = append(class, "avatar-default")
	}
	for _, c := range args.Class {
		if c != "" {
			class = append(class, c)
		}
	}
	return class
}

func buildMarkup(args Args, url2x string) string {
	extra := args.ExtraAttr
	if args.Loading.emitted() && !loadingAttrPattern.MatchString(extra) {
		if extra != "" {
			extra += " "
		}
		extra += "loading='" + string(args.Loading) + "'"
	}

	return fmt.Sprintf(
		"<img alt='%s' src='%s' srcset='%s' class='%s' height='%d' width='%d' %s/>",
		escAttr(args.Alt),
		escURL(args.URL),
		escURL(url2x)+" 2x",
		escAttr(strings.Join(ClassList(args), " ")),
		args.Height,
		args.Width,
		extra,
	)
}

func escAttr(s string) string {
	return html.EscapeString(s)
}

// escURL keeps http, https, protocol-relative and root-relative URLs, drops
// everything else, and escapes the rest for use inside a quoted attribute.
func escURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		if !strings.HasPrefix(raw, "/") {
			return ""
		}
	default:
		return ""
	}
	return html.EscapeString(strings.ReplaceAll(raw, " ", "%20"))
}
