package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/database"
	"github.com/nao1215/pokedex/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent and most searched lookups",
		Long: `History shows the most recent lookups, including names that were not
found, and the Pokémon looked up most often. Lookups are recorded in the
cache database, so nothing is recorded with --no-cache.

Examples:
  pokedex history
  pokedex history --limit 50 --top 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Number of recent lookups to show")
	cmd.Flags().Int("top", 10, "Number of most searched Pokémon to show")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	if limit <= 0 || top <= 0 {
		return errors.New("--limit and --top must be positive")
	}

	db, _, err := openDB(cmd)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No lookups recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	recent, err := db.RecentLookups(ctx, limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lookups recorded yet.")
		return nil
	}
	counts, err := db.LookupCounts(ctx, top)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Recent lookups:")
	fmt.Fprintln(out, renderRecent(recent))
	if len(counts) > 0 {
		fmt.Fprintln(out, "\nMost searched:")
		fmt.Fprintln(out, renderCounts(counts))
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func renderRecent(records []database.LookupRecord) string {
	t := newTable("#", "NAME", "RESULT", "WHEN")
	for _, r := range records {
		result := "found"
		if !r.Found {
			result = "not found"
		}
		t.Row(strconv.FormatInt(r.ID, 10), model.Capitalize(r.Name), result, humanize.Time(r.Timestamp))
	}
	return t.String()
}

func renderCounts(counts []database.LookupCount) string {
	t := newTable("NAME", "LOOKUPS")
	for _, c := range counts {
		t.Row(model.Capitalize(c.Name), strconv.Itoa(c.Count))
	}
	return t.String()
}
