package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/local-avatar-api/internal/config"
	"github.com/local-avatar-api/internal/database"
	"github.com/local-avatar-api/internal/repository"
	"github.com/local-avatar-api/internal/service"
	"github.com/local-avatar-api/internal/storage"
	"github.com/local-avatar-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "avatarctl",
	Short: "Resolve and render local avatars",
	Long: `avatarctl resolves avatars against the same database and storage as the
avatar API server. References are numeric user ids, comment:<id>, post:<id>
or email:<address>.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load environment variables from this file if it exists")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadEnvFile applies path on top of the environment. A missing file is
// not an error; variables already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// backend is everything a command needs to talk to the avatar stack.
type backend struct {
	cfg      *config.Config
	log      zerolog.Logger
	db       *database.DB
	services *service.Services
}

func (b *backend) Close() {
	if b.db != nil {
		b.db.Close()
	}
}

// openBackend connects to the database and builds the services. Tests
// replace it to run commands against mocks.
var openBackend = func(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.Env)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, err
	}

	urls, err := storage.NewURLBuilder(ctx, cfg.Storage, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	return &backend{
		cfg:      cfg,
		log:      log,
		db:       db,
		services: service.NewServices(repository.New(db), urls, cfg, log),
	}, nil
}
