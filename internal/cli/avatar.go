package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/spf13/cobra"
)

// errNoAvatar makes the command exit non-zero when nothing should render.
var errNoAvatar = errors.New("no avatar")

// renderFlags mirrors the query parameters of the HTTP API.
type renderFlags struct {
	size         string
	def          string
	alt          string
	width        int
	height       int
	rating       string
	forceDefault bool
	forceDisplay bool
	class        []string
	loading      string
	extraAttr    string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.size, "size", "96", "Avatar size in pixels")
	fl.StringVar(&f.def, "default", "", "Default scheme (mystery, gravatar_default, or a URL)")
	fl.StringVar(&f.alt, "alt", "", "Alternative text")
	fl.IntVar(&f.width, "width", 0, "Width in pixels, defaults to size")
	fl.IntVar(&f.height, "height", 0, "Height in pixels, defaults to size")
	fl.StringVar(&f.rating, "rating", "", "Maximum rating, defaults to the site option")
	fl.BoolVar(&f.forceDefault, "force-default", false, "Skip the user's own avatar")
	fl.BoolVar(&f.forceDisplay, "force-display", false, "Render even when avatars are disabled for the site")
	fl.StringSliceVar(&f.class, "class", nil, "Extra CSS classes")
	fl.StringVar(&f.loading, "loading", "", "Loading hint (lazy, eager, none)")
	fl.StringVar(&f.extraAttr, "extra-attr", "", "Raw attributes appended to the img tag")
}

func (f *renderFlags) options() avatar.Options {
	return avatar.Options{
		Width:        f.width,
		Height:       f.height,
		Rating:       f.rating,
		ForceDefault: f.forceDefault,
		ForceDisplay: f.forceDisplay,
		Class:        f.class,
		Loading:      avatar.ParseLoading(f.loading),
		ExtraAttr:    f.extraAttr,
	}
}

var (
	renderOpts renderFlags
	urlOpts    renderFlags
	dataOpts   renderFlags
)

var renderCmd = &cobra.Command{
	Use:   "render <ref>",
	Short: "Print the img markup for a reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, args[0], func(b *backend, ref avatar.UserRef) error {
			markup, ok := b.services.Avatar.Render(cmd.Context(), ref, avatar.SizeFrom(renderOpts.size), renderOpts.def, renderOpts.alt, renderOpts.options())
			if !ok {
				return errNoAvatar
			}
			fmt.Fprintln(cmd.OutOrStdout(), markup)
			return nil
		})
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <ref>",
	Short: "Print the avatar URL for a reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, args[0], func(b *backend, ref avatar.UserRef) error {
			url := b.services.Avatar.URL(cmd.Context(), ref, avatar.SizeFrom(urlOpts.size), urlOpts.def, urlOpts.options())
			if url == "" {
				return errNoAvatar
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		})
	},
}

var dataCmd = &cobra.Command{
	Use:   "data <ref>",
	Short: "Print the resolved avatar data as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, args[0], func(b *backend, ref avatar.UserRef) error {
			resolved := b.services.Avatar.Resolve(cmd.Context(), ref, avatar.SizeFrom(dataOpts.size), dataOpts.def, dataOpts.options())
			out, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling avatar data: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		})
	},
}

func init() {
	renderOpts.register(renderCmd)
	urlOpts.register(urlCmd)
	dataOpts.register(dataCmd)
	rootCmd.AddCommand(renderCmd, urlCmd, dataCmd)
}

func withBackend(cmd *cobra.Command, raw string, fn func(*backend, avatar.UserRef) error) error {
	b, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()

	ref, err := b.services.Refs.Parse(cmd.Context(), raw)
	if err != nil {
		return err
	}
	return fn(b, ref)
}
