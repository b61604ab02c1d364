package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/config"
	"github.com/nao1215/pokedex/internal/database"
	pokelog "github.com/nao1215/pokedex/internal/log"
	"github.com/nao1215/pokedex/internal/pokeapi"
	"github.com/nao1215/pokedex/internal/pokedex"
)

// app bundles the collaborators shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *database.PokeDB
	client  *pokeapi.Client
	service *pokedex.Service
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfig builds the configuration from defaults, the config file and
// the persistent flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user named a config file it must exist; otherwise the
	// defaults are used when no file is found.
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.CacheEnabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// newApp loads the configuration and wires the database, the API client
// and the service. logger may be nil to log to stderr. extra options are
// applied after the configured ones, so flags can override the file.
func newApp(cmd *cobra.Command, logger *slog.Logger, extra ...pokedex.Option) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = pokelog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}

	a := &app{cfg: cfg, logger: logger}

	opts := pokeapi.OptionsFromConfig(cfg)
	opts.Logger = logger

	if cfg.CacheEnabled {
		a.db, err = database.Open(cfg.CacheDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debug("database opened", "path", a.db.Path())
		opts.Store = a.db
		opts.Sprites = a.db
	}

	a.client, err = pokeapi.New(opts)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create PokeAPI client: %w", err)
	}

	svcOpts := []pokedex.Option{
		pokedex.WithLogger(logger),
		pokedex.WithConcurrency(cfg.Concurrency),
		pokedex.WithListingLimit(cfg.ListingLimit),
		pokedex.WithExcludedTypes(cfg.ExcludedTypes),
		pokedex.WithSprites(cfg.FetchSprites),
	}
	if a.db != nil {
		svcOpts = append(svcOpts, pokedex.WithHistory(a.db))
	}
	svcOpts = append(svcOpts, extra...)
	a.service = pokedex.New(a.client, svcOpts...)

	return a, nil
}

// Close releases the database.
func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// openDB opens the cache database without creating it, for commands that
// only inspect it. It returns database.ErrDatabaseNotFound when nothing
// has been cached yet.
func openDB(cmd *cobra.Command) (*database.PokeDB, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.CacheEnabled {
		return nil, nil, errors.New("the cache database is disabled (remove --no-cache or set cache.enabled)")
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.CacheDir, opts)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// createOutputFile creates path and its parent directories.
// Reports are only readable by the owner.
func createOutputFile(path string) (io.WriteCloser, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
