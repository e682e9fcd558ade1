package avatar_test

import (
	"context"
	"testing"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/hooks"
	"github.com/local-avatar-api/internal/models"
	"github.com/rs/zerolog"
)

func TestNewRegistry_DefaultKey(t *testing.T) {
	if got := avatar.NewRegistry(nil).MetadataKey(); got != avatar.DefaultMetadataKey {
		t.Errorf("Expected %s, got %s", avatar.DefaultMetadataKey, got)
	}

	empty := hooks.NewFilter[string, struct{}](avatar.HookMetadataKey, zerolog.Nop())
	if got := avatar.NewRegistry(empty).MetadataKey(); got != "kntnt-avatar" {
		t.Errorf("Expected kntnt-avatar, got %s", got)
	}
}

func TestNewRegistry_FilteredKey(t *testing.T) {
	f := hooks.NewFilter[string, struct{}](avatar.HookMetadataKey, zerolog.Nop())
	f.Register(func(key string, _ struct{}) string { return "profile-photo" })

	if got := avatar.NewRegistry(f).MetadataKey(); got != "profile-photo" {
		t.Errorf("Expected profile-photo, got %s", got)
	}
}

func TestNewRegistry_BlankKeyKeepsDefault(t *testing.T) {
	f := hooks.NewFilter[string, struct{}](avatar.HookMetadataKey, zerolog.Nop())
	f.Register(func(string, struct{}) string { return "   " })

	if got := avatar.NewRegistry(f).MetadataKey(); got != avatar.DefaultMetadataKey {
		t.Errorf("Expected default key, got %s", got)
	}
}

func TestRegistry_KeyIsFixedAtConstruction(t *testing.T) {
	f := newFixture()
	f.hooks.MetadataKey.Register(func(string, struct{}) string { return "photo" })
	r := f.resolver()

	// Registering later has no effect on the built registry.
	f.hooks.MetadataKey.Register(func(string, struct{}) string { return "other" })

	f.users.Add(&models.User{ID: 3})
	f.users.SetMeta(3, "photo", "42")
	f.users.SetMeta(3, "other", "43")
	f.media.Known[42] = true
	f.media.Known[43] = true

	res := r.Resolve(context.Background(), avatar.UserID(3), 96, "", avatar.Options{})
	if !res.FoundAvatar {
		t.Fatal("Expected custom avatar under the filtered key")
	}
	if res.URL != "https://media.example/42-96x96.png" {
		t.Errorf("Unexpected URL %s", res.URL)
	}
}
