package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/model"
	"github.com/nao1215/pokedex/internal/pokedex"
	"github.com/nao1215/pokedex/internal/sprite"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <name>...",
		Short: "Look up Pokémon by name",
		Long: `Search looks up one or more Pokémon and prints their name, height, weight
and abilities, followed by the evolution line. The looked up Pokémon is
marked in the line; stages without a sprite show "(No image)" and sprites
that could not be downloaded show "(Image error)".

Several names are looked up concurrently and printed in the order given.

Examples:
  # Look up a single Pokémon
  pokedex search pikachu

  # Look up several Pokémon, four at a time
  pokedex search bulbasaur charmander squirtle --concurrency 4

  # Output a Markdown page and keep a copy
  pokedex search eevee --markdown -o reports/eevee.md

  # Save the evolution line sprites and a merged strip
  pokedex search pichu --sprites-dir sprites --strip pichu-line.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	addReportFlags(cmd)
	cmd.Flags().String("sprites-dir", "",
		"Save the sprites of the evolution line to this directory")
	cmd.Flags().String("strip", "",
		"Merge the evolution line sprites side by side into this PNG file")
	cmd.Flags().Int("concurrency", 0,
		"Number of concurrent lookups (default from config)")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	spritesDir, err := cmd.Flags().GetString("sprites-dir")
	if err != nil {
		return err
	}
	stripPath, err := cmd.Flags().GetString("strip")
	if err != nil {
		return err
	}
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}

	var extra []pokedex.Option
	if concurrency > 0 {
		extra = append(extra, pokedex.WithConcurrency(concurrency))
	}
	if spritesDir != "" || stripPath != "" {
		extra = append(extra, pokedex.WithSprites(true))
	}

	a, err := newApp(cmd, nil, extra...)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	results := make([]pokedex.Result, len(args))
	err = a.service.LookupMany(ctx, args, func(r pokedex.Result) {
		a.logger.Debug("lookup finished", "name", r.Name, "index", r.Index, "error", r.Err)
		results[r.Index] = r
	})
	if err != nil {
		return err
	}

	w, closeReport, err := openReport(cmd, a.cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeReport()

	textOutput := isTextOutput(cmd)
	var failed []error
	printed := 0
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Err)
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s\n", r.Err)
			continue
		}

		if textOutput && printed > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if _, err := w.WriteEntry(r.Entry); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		printed++

		if err := saveSprites(cmd, r.Entry, spritesDir, stripPath, len(args) > 1); err != nil {
			a.logger.Warn("failed to save sprites", "name", r.Name, "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	switch {
	case len(failed) == 0:
		return nil
	case len(args) == 1:
		// The failure was printed above.
		return fmt.Errorf("%w: %w", errReported, failed[0])
	default:
		return fmt.Errorf("%d of %d lookups failed", len(failed), len(args))
	}
}

// isTextOutput reports whether neither --json nor --markdown was given.
func isTextOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")         //nolint:errcheck // flag is registered by addReportFlags
	asMarkdown, _ := cmd.Flags().GetBool("markdown") //nolint:errcheck // flag is registered by addReportFlags
	return !asJSON && !asMarkdown
}

// saveSprites writes the entry's sprites to spritesDir and merges them into
// stripPath. Both are optional. When several Pokémon are searched, the
// strip file name gets the Pokémon name appended.
func saveSprites(cmd *cobra.Command, entry *model.Entry, spritesDir, stripPath string, multi bool) error {
	if spritesDir == "" && stripPath == "" {
		return nil
	}

	dir := spritesDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "pokedex-sprites-*")
		if err != nil {
			return fmt.Errorf("failed to create temporary directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}

	paths, err := sprite.SaveEntry(dir, entry)
	if err != nil {
		return err
	}
	if spritesDir != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d sprites to %s\n", len(paths), spritesDir)
	}

	if stripPath == "" {
		return nil
	}
	out := stripPath
	if multi {
		out = stripFileName(stripPath, model.NormalizeName(entry.Summary.Name))
	}
	if err := sprite.Strip(paths, out); err != nil {
		if errors.Is(err, sprite.ErrNoSprites) {
			return fmt.Errorf("no sprites to merge for %s", entry.Summary.Name)
		}
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved evolution strip to %s\n", out)
	return nil
}

// stripFileName inserts name before the extension of path:
// "line.png" becomes "line-pikachu.png".
func stripFileName(path, name string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "-" + name + ext
}
