package avatar

import (
	"strings"

	"github.com/local-avatar-api/internal/hooks"
)

// DefaultMetadataKey is the user attribute holding the custom avatar
// attachment id unless the metadata key hook overrides it.
const DefaultMetadataKey = "kntnt-avatar"

// Registry holds the extension's process-wide configuration. It is built
// once at startup and never mutated afterwards.
type Registry struct {
	metadataKey string
}

// NewRegistry resolves the metadata key through keyFilter. A nil filter or a
// blank result keeps DefaultMetadataKey.
func NewRegistry(keyFilter *hooks.Filter[string, struct{}]) *Registry {
	key := DefaultMetadataKey
	if keyFilter != nil {
		key = strings.TrimSpace(keyFilter.Apply(key, struct{}{}))
	}
	if key == "" {
		key = DefaultMetadataKey
	}
	return &Registry{metadataKey: key}
}

// MetadataKey returns the user attribute name that stores the avatar attachment id
func (r *Registry) MetadataKey() string {
	return r.metadataKey
}
