package avatar

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSize is used whenever the requested size is missing or invalid.
const DefaultSize = 96

// MaxDimension bounds size, width and height. Larger magnitudes are invalid.
const MaxDimension = math.MaxInt32

// DefaultScheme tells the gravatar service what to show when no avatar exists.
// Values other than the constants below are passed through as a literal
// fallback URL or identifier.
//
// DefaultDisabled encodes as JSON false; every other scheme is a JSON string.
type DefaultScheme string

const (
	DefaultNone     DefaultScheme = ""
	DefaultMystery  DefaultScheme = "mm"
	DefaultDisabled DefaultScheme = "false"
)

// SchemeFor maps a caller or site supplied default onto a DefaultScheme.
func SchemeFor(v string) DefaultScheme {
	switch v {
	case "mm", "mystery", "mysteryman":
		return DefaultMystery
	case "gravatar_default", "false":
		return DefaultDisabled
	}
	return DefaultScheme(v)
}

// MarshalJSON implements json.Marshaler.
func (d DefaultScheme) MarshalJSON() ([]byte, error) {
	if d == DefaultDisabled {
		return []byte("false"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DefaultScheme) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		*d = DefaultDisabled
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = DefaultScheme(s)
	return nil
}

// LoadingHint is the value of the img loading attribute.
type LoadingHint string

const (
	LoadingUnset LoadingHint = ""
	LoadingLazy  LoadingHint = "lazy"
	LoadingEager LoadingHint = "eager"
	LoadingNone  LoadingHint = "none"
)

// ParseLoading maps a raw loading value onto a LoadingHint. Falsy values
// explicitly disable the attribute.
func ParseLoading(v string) LoadingHint {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "":
		return LoadingUnset
	case "none", "false", "0", "off":
		return LoadingNone
	}
	return LoadingHint(v)
}

func (h LoadingHint) emitted() bool {
	return h == LoadingLazy || h == LoadingEager
}

// Options is the caller-supplied options bag. Zero values mean "unset" and
// are replaced by site defaults during normalization.
type Options struct {
	Width        int
	Height       int
	ForceDefault bool
	ForceDisplay bool
	Rating       string
	Scheme       string
	Class        []string
	Loading      LoadingHint
	ExtraAttr    string
}

// SiteDefaults carries the site-level values normalization falls back to.
type SiteDefaults struct {
	Default     string
	Rating      string
	LazyLoading bool
}

// Args is the configuration threaded through resolution. It is passed and
// returned by value; every stage works on its own copy.
type Args struct {
	Size         int           `json:"size"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Default      DefaultScheme `json:"default"`
	Alt          string        `json:"alt"`
	Rating       string        `json:"rating"`
	Scheme       string        `json:"scheme,omitempty"`
	ForceDefault bool          `json:"force_default"`
	ForceDisplay bool          `json:"force_display"`
	Class        []string      `json:"class,omitempty"`
	Loading      LoadingHint   `json:"loading,omitempty"`
	ExtraAttr    string        `json:"extra_attr,omitempty"`
	URL          string        `json:"url,omitempty"`
	FoundAvatar  bool          `json:"found_avatar"`
}

// Clone returns a copy that shares no slices with a.
func (a Args) Clone() Args {
	if a.Class != nil {
		a.Class = append([]string(nil), a.Class...)
	}
	return a
}

// Scaled returns a copy with size, width and height multiplied by factor.
// Products saturate at math.MaxInt.
func (a Args) Scaled(factor int) Args {
	b := a.Clone()
	b.Size = scale(b.Size, factor)
	b.Width = scale(b.Width, factor)
	b.Height = scale(b.Height, factor)
	return b
}

func scale(v, factor int) int {
	if factor > 1 && v > math.MaxInt/factor {
		return math.MaxInt
	}
	return v * factor
}

// Normalize builds Args from raw render arguments. Size is coerced to a
// positive integer no larger than MaxDimension (0 or out of range becomes
// DefaultSize); width and height follow size unless opts sets them.
func Normalize(size int, def, alt string, opts Options, site SiteDefaults) Args {
	args := Args{
		Size:         coerceSize(size),
		Alt:          alt,
		ForceDefault: opts.ForceDefault,
		ForceDisplay: opts.ForceDisplay,
		Scheme:       opts.Scheme,
		ExtraAttr:    opts.ExtraAttr,
	}
	args.Width = dimension(opts.Width, args.Size)
	args.Height = dimension(opts.Height, args.Size)

	if def == "" {
		def = site.Default
	}
	if def == "" {
		def = "mystery"
	}
	args.Default = SchemeFor(def)

	rating := opts.Rating
	if rating == "" {
		rating = site.Rating
	}
	args.Rating = strings.ToLower(rating)

	args.Loading = opts.Loading
	if args.Loading == LoadingUnset {
		args.Loading = LoadingNone
		if site.LazyLoading {
			args.Loading = LoadingLazy
		}
	}

	for _, c := range opts.Class {
		if c = strings.TrimSpace(c); c != "" {
			args.Class = append(args.Class, c)
		}
	}

	return args
}

// SizeFrom coerces an untyped size (ints, floats, numeric strings) into a
// positive integer, falling back to DefaultSize for anything else.
func SizeFrom(v any) int {
	var n float64
	switch x := v.(type) {
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint:
		n = float64(x)
	case float32:
		n = float64(x)
	case float64:
		n = x
	case string:
		f, ok := parseNumeric(x)
		if !ok {
			return DefaultSize
		}
		n = f
	default:
		return DefaultSize
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > MaxDimension {
		return DefaultSize
	}
	return coerceSize(int(n))
}

func coerceSize(size int) int {
	if size == 0 || size < -MaxDimension || size > MaxDimension {
		return DefaultSize
	}
	if size < 0 {
		return -size
	}
	return size
}

func dimension(v, size int) int {
	if v == 0 || v < -MaxDimension || v > MaxDimension {
		return size
	}
	if v < 0 {
		return -v
	}
	return v
}

var numericPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// parseNumeric accepts decimal numbers with optional sign, fraction and
// exponent, surrounded by optional whitespace.
func parseNumeric(s string) (float64, bool) {
	if !numericPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
