package storage

import (
	"context"
	"fmt"

	"github.com/local-avatar-api/internal/config"
	"github.com/rs/zerolog"
)

// URLBuilder turns an attachment object key into a URL a browser can fetch.
type URLBuilder interface {
	URL(ctx context.Context, key string) (string, error)
}

// NewURLBuilder is the factory for URLBuilder. It picks the implementation
// named by cfg.Driver.
func NewURLBuilder(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (URLBuilder, error) {
	log = log.With().Str("component", "storage").Str("driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case "", "public":
		return NewPublicURLBuilder(cfg.PublicBaseURL), nil
	case "s3":
		return newS3Presigner(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
