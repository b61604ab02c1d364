package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/database"
)

// NewCacheCmd creates the cache command and its subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the response cache",
		Long: `Cache manages the SQLite database that stores PokeAPI responses,
downloaded sprites and lookup history. The database lives in the XDG data
directory unless cache.dir is set in the configuration file.`,
	}

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePurgeCmd())

	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show what the cache holds",
		Args:  cobra.NoArgs,
		RunE:  runCacheStatsCmd,
	}
}

func newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached responses, sprites and lookup history",
		Args:  cobra.NoArgs,
		RunE:  runCacheClearCmd,
	}
	cmd.Flags().BoolP("force", "f", false, "Do not fail when there is no cache database")
	return cmd
}

func newCachePurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached responses and sprites older than a duration",
		Long: `Purge deletes cached responses and sprites fetched longer ago than
--older-than. Lookup history is kept.

Examples:
  # Use the configured cache TTL
  pokedex cache purge

  # Drop everything fetched more than a day ago
  pokedex cache purge --older-than 24h`,
		Args: cobra.NoArgs,
		RunE: runCachePurgeCmd,
	}
	cmd.Flags().Duration("older-than", 0, "Age of entries to delete (default: the configured cache TTL)")
	return cmd
}

// runCacheStatsCmd executes the cache stats command.
func runCacheStatsCmd(cmd *cobra.Command, _ []string) error {
	db, _, err := openDB(cmd)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "The cache is empty.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	stats, err := db.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s (%s)\n", stats.Path, humanize.Bytes(uint64(max(stats.SizeBytes, 0))))

	t := newTable("ENTRY", "COUNT")
	for _, kind := range slices.Sorted(maps.Keys(stats.ByKind)) {
		t.Row("response: "+kind, strconv.Itoa(stats.ByKind[kind]))
	}
	t.Row("responses", strconv.Itoa(stats.Responses))
	t.Row("sprites", strconv.Itoa(stats.Sprites))
	t.Row("lookups", strconv.Itoa(stats.Lookups))
	fmt.Fprintln(out, t.String())
	return nil
}

// runCacheClearCmd executes the cache clear command.
func runCacheClearCmd(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	db, _, err := openDB(cmd)
	if errors.Is(err, database.ErrDatabaseNotFound) && force {
		fmt.Fprintln(cmd.OutOrStdout(), "The cache is empty.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if err := db.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", db.Path())
	return nil
}

// runCachePurgeCmd executes the cache purge command.
func runCachePurgeCmd(cmd *cobra.Command, _ []string) error {
	olderThan, err := cmd.Flags().GetDuration("older-than")
	if err != nil {
		return err
	}
	if olderThan < 0 {
		return fmt.Errorf("invalid --older-than %s: must not be negative", olderThan)
	}

	db, cfg, err := openDB(cmd)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "The cache is empty.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	if !cmd.Flags().Changed("older-than") {
		if cfg.CacheTTL == 0 {
			return errors.New("cached entries never expire (cache.ttl is 0); pass --older-than")
		}
		olderThan = cfg.CacheTTL
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	n, err := db.Purge(ctx, olderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d entries older than %s\n", n, olderThan.Round(time.Second))
	return nil
}
