package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/database"
	"github.com/local-avatar-api/internal/models"
	"github.com/local-avatar-api/internal/repository"
	"github.com/rs/zerolog"
)

// openTestDB connects to the database described by the DB_* variables and
// applies the migrations. Tests are skipped unless TEST_DB_HOST is set.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping database tests")
	}
	t.Setenv("DB_HOST", host)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}

	db, err := database.New(&cfg.Database, zerolog.Nop())
	if err != nil {
		t.Fatalf("database.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, currentFile, _, _ := runtime.Caller(0)
	migrations := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(migrations); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	return db
}

type seed struct {
	userID       int64
	email        string
	articleID    int64
	commentID    int64
	guestComment int64
	attachmentID int64
}

func seedData(t *testing.T, db *database.DB) seed {
	t.Helper()
	ctx := context.Background()
	tag := uuid.NewString()[:8]
	s := seed{email: "Avatar." + tag + "@Example.com"}

	mustScan := func(query string, dest *int64, args ...any) {
		if err := db.QueryRowContext(ctx, query, args...).Scan(dest); err != nil {
			t.Fatalf("seeding failed (%s): %v", query, err)
		}
	}

	mustScan(`INSERT INTO users (email, login, display_name) VALUES ($1, $2, 'Test') RETURNING id`, &s.userID, s.email, "login-"+tag)
	mustScan(`INSERT INTO articles (author_id, slug, title) VALUES ($1, $2, 'Hello') RETURNING id`, &s.articleID, s.userID, "slug-"+tag)
	mustScan(`INSERT INTO comments (article_id, user_id, body) VALUES ($1, $2, 'hi') RETURNING id`, &s.commentID, s.articleID, s.userID)
	mustScan(`INSERT INTO comments (article_id, author_email, type) VALUES ($1, 'guest@example.com', 'pingback') RETURNING id`, &s.guestComment, s.articleID)
	mustScan(`INSERT INTO attachments (object_key, mime_type, width, height) VALUES ($1, 'image/png', 512, 512) RETURNING id`, &s.attachmentID, tag+".png")

	exec := func(query string, args ...any) {
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			t.Fatalf("seeding failed (%s): %v", query, err)
		}
	}
	exec(`INSERT INTO user_meta (user_id, meta_key, meta_value) VALUES ($1, 'kntnt-avatar', $2)`, s.userID, s.attachmentID)
	exec(`INSERT INTO attachment_sizes (attachment_id, name, object_key, width, height) VALUES
		($1, 'medium', 'm.png', 300, 300),
		($1, 'thumbnail', 't.png', 96, 96)`, s.attachmentID)

	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, s.articleID)
		db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, s.userID)
		db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, s.attachmentID)
	})
	return s
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	s := seedData(t, db)
	repos := repository.New(db)
	ctx := context.Background()

	u, err := repos.User.GetByID(ctx, s.userID)
	if err != nil || u == nil {
		t.Fatalf("GetByID failed: %v, %v", u, err)
	}
	if u.Email != s.email {
		t.Errorf("Expected %s, got %s", s.email, u.Email)
	}

	byEmail, err := repos.User.GetByEmail(ctx, " "+strings.ToUpper(s.email)+" ")
	if err != nil || byEmail == nil || byEmail.ID != s.userID {
		t.Errorf("Email lookup should be case-insensitive, got %v, %v", byEmail, err)
	}

	missing, err := repos.User.GetByID(ctx, -1)
	if err != nil || missing != nil {
		t.Errorf("Expected (nil, nil) for a missing user, got %v, %v", missing, err)
	}

	meta, err := repos.User.GetMeta(ctx, s.userID, "kntnt-avatar")
	if err != nil {
		t.Fatalf("GetMeta failed: %v", err)
	}
	if meta == "" {
		t.Error("Expected avatar metadata")
	}

	if meta, _ := repos.User.GetMeta(ctx, s.userID, "other"); meta != "" {
		t.Errorf("Expected empty metadata, got %q", meta)
	}
}

func TestContentRepositories(t *testing.T) {
	db := openTestDB(t)
	s := seedData(t, db)
	repos := repository.New(db)
	ctx := context.Background()

	article, err := repos.Article.GetByID(ctx, s.articleID)
	if err != nil || article == nil || article.AuthorID != s.userID {
		t.Fatalf("Unexpected article %v, %v", article, err)
	}

	comment, err := repos.Comment.GetByID(ctx, s.commentID)
	if err != nil || comment == nil || comment.UserID != s.userID || comment.CommentType() != models.CommentTypeComment {
		t.Fatalf("Unexpected comment %+v, %v", comment, err)
	}

	guest, err := repos.Comment.GetByID(ctx, s.guestComment)
	if err != nil || guest == nil {
		t.Fatalf("Unexpected guest comment %v, %v", guest, err)
	}
	if guest.UserID != 0 || guest.AuthorEmail != "guest@example.com" || guest.Type != "pingback" {
		t.Errorf("Unexpected guest comment %+v", guest)
	}
}

func TestAttachmentRepository(t *testing.T) {
	db := openTestDB(t)
	s := seedData(t, db)
	repos := repository.New(db)

	att, err := repos.Attachment.GetByID(context.Background(), s.attachmentID)
	if err != nil || att == nil {
		t.Fatalf("GetByID failed: %v, %v", att, err)
	}
	if !att.IsImage() {
		t.Error("Expected an image attachment")
	}
	if len(att.Sizes) != 2 || att.Sizes[0].Name != "thumbnail" || att.Sizes[1].Name != "medium" {
		t.Errorf("Expected sizes ordered smallest first, got %+v", att.Sizes)
	}

	if n, err := repos.Attachment.Count(context.Background()); err != nil || n < 1 {
		t.Errorf("Unexpected count %d, %v", n, err)
	}
}

func TestOptionRepository(t *testing.T) {
	db := openTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	value, ok, err := repos.Option.Get(ctx, models.OptionShowAvatars)
	if err != nil || !ok || value == "" {
		t.Errorf("Expected the seeded show_avatars option, got %q, %v, %v", value, ok, err)
	}

	_, ok, err = repos.Option.Get(ctx, "no-such-option-"+uuid.NewString())
	if err != nil || ok {
		t.Errorf("Expected a missing option, got %v, %v", ok, err)
	}
}
