package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/mocks"
	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/service"
	"github.com/local-avatar-api/internal/storage"
	"github.com/rs/zerolog"
)

func setupBackend(t *testing.T) *mocks.MockRepositories {
	t.Helper()

	repos := mocks.NewMockRepositories()
	repos.User.Add(&models.User{ID: 7})
	repos.User.Add(&models.User{ID: 8})
	repos.User.SetMeta(7, avatar.DefaultMetadataKey, "42")
	repos.Attachment.Attachments[42] = &models.Attachment{
		ID: 42, ObjectKey: "me.png", MimeType: "image/png", Width: 400, Height: 400,
	}

	cfg := &config.Config{Avatar: config.AvatarConfig{ShowAvatars: true, Default: "mystery", Rating: "G"}}

	orig := openBackend
	openBackend = func(ctx context.Context) (*backend, error) {
		return &backend{
			cfg:      cfg,
			log:      zerolog.Nop(),
			services: service.NewServices(repos.Repositories(), storage.NewPublicURLBuilder("/uploads"), cfg, zerolog.Nop()),
		}, nil
	}
	t.Cleanup(func() { openBackend = orig })

	return repos
}

func run(args ...string) (string, error) {
	renderOpts = renderFlags{size: "96"}
	urlOpts = renderFlags{size: "96"}
	dataOpts = renderFlags{size: "96"}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	setupBackend(t)

	out, err := run("render", "7", "--size", "50", "--class", "round,big", "--alt", "Me", "--loading", "eager")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := "<img alt='Me' src='/uploads/me.png' srcset='/uploads/me.png 2x' " +
		"class='avatar avatar-50 photo round big' height='50' width='50' loading='eager'/>\n"
	if out != want {
		t.Errorf("Unexpected output:\n got: %s\nwant: %s", out, want)
	}
}

func TestRenderCommand_NoAvatar(t *testing.T) {
	setupBackend(t)

	if _, err := run("render", "8"); !errors.Is(err, errNoAvatar) {
		t.Errorf("Expected errNoAvatar, got %v", err)
	}
}

func TestRenderCommand_ExtraAttr(t *testing.T) {
	setupBackend(t)

	out, err := run("render", "7", "--extra-attr", "data-id='7'", "--loading", "none")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "width='96' data-id='7'/>") {
		t.Errorf("Expected raw extra attributes, got %s", out)
	}
}

func TestURLCommand(t *testing.T) {
	repos := setupBackend(t)
	repos.Option.Options[models.OptionAvatarDefaultAttachment] = "42"

	out, err := run("url", "8")
	if err != nil {
		t.Fatalf("url failed: %v", err)
	}
	if strings.TrimSpace(out) != "/uploads/me.png" {
		t.Errorf("Unexpected URL %q", out)
	}
}

func TestDataCommand(t *testing.T) {
	setupBackend(t)

	out, err := run("data", "7", "--size", "32")
	if err != nil {
		t.Fatalf("data failed: %v", err)
	}

	var resolved avatar.Resolved
	if err := json.Unmarshal([]byte(out), &resolved); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out, err)
	}
	if !resolved.FoundAvatar || resolved.Args.Size != 32 {
		t.Errorf("Unexpected data %+v", resolved)
	}
}

func TestInvalidReference(t *testing.T) {
	setupBackend(t)

	if _, err := run("render", "comment:x"); !errors.Is(err, service.ErrInvalidRef) {
		t.Errorf("Expected ErrInvalidRef, got %v", err)
	}
}

func TestMigrateGoto_InvalidVersion(t *testing.T) {
	called := false
	orig := openBackend
	openBackend = func(ctx context.Context) (*backend, error) {
		called = true
		return nil, errors.New("unexpected")
	}
	t.Cleanup(func() { openBackend = orig })

	if _, err := run("migrate", "goto", "latest"); err == nil {
		t.Error("Expected an error for a non-numeric version")
	}
	if called {
		t.Error("Version should be validated before connecting")
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := loadEnvFile(t.TempDir() + "/missing.env"); err != nil {
		t.Errorf("A missing env file should be ignored, got %v", err)
	}
}

func TestVersionFlag(t *testing.T) {
	orig := rootCmd.Version
	rootCmd.Version = "1.2.3"
	t.Cleanup(func() { rootCmd.Version = orig })

	out, err := run("--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("Expected version in output, got %q", out)
	}
}
