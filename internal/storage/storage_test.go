package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/storage"
	"github.com/rs/zerolog"
)

func TestPublicURLBuilder_URL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{name: "relative base", base: "/uploads", key: "2024/05/me.png", want: "/uploads/2024/05/me.png"},
		{name: "trailing slash", base: "https://cdn.example.com/", key: "me.png", want: "https://cdn.example.com/me.png"},
		{name: "leading slash on key", base: "/uploads", key: "/me.png", want: "/uploads/me.png"},
		{name: "escapes segments", base: "/uploads", key: "a b/c?d.png", want: "/uploads/a%20b/c%3Fd.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.NewPublicURLBuilder(tt.base).URL(context.Background(), tt.key)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPublicURLBuilder_EmptyKey(t *testing.T) {
	_, err := storage.NewPublicURLBuilder("/uploads").URL(context.Background(), "")
	if !errors.Is(err, storage.ErrEmptyKey) {
		t.Errorf("Expected ErrEmptyKey, got %v", err)
	}
}

func TestNewURLBuilder_UnknownDriver(t *testing.T) {
	_, err := storage.NewURLBuilder(context.Background(), config.StorageConfig{Driver: "ftp"}, zerolog.Nop())
	if err == nil {
		t.Fatal("Expected error for unknown driver")
	}
}

func TestNewURLBuilder_S3Presigns(t *testing.T) {
	b, err := storage.NewURLBuilder(context.Background(), config.StorageConfig{
		Driver:      "s3",
		BucketName:  "avatars",
		Endpoint:    "http://localhost:9000",
		AccessKeyID: "key",
		SecretKey:   "secret",
		Region:      "us-east-1",
		PresignTTL:  10 * time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewURLBuilder failed: %v", err)
	}

	url, err := b.URL(context.Background(), "users/7.png")
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9000/avatars/users/7.png?") {
		t.Errorf("Unexpected presigned URL: %s", url)
	}
	if !strings.Contains(url, "X-Amz-Expires=600") {
		t.Errorf("Expected 600s expiry in %s", url)
	}
}
