package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/pokedex"
)

// NewTypesCmd creates the types command.
func NewTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types [type]",
		Short: "List Pokémon types, or the Pokémon of one type",
		Long: `Types lists every Pokémon type that has regular members (PokeAPI's
"unknown" and "shadow" types are hidden). Given a type, it lists the
Pokémon of that type in alphabetical order, showing at most --limit names
together with the total count.

Examples:
  # List the browsable types
  pokedex types

  # List the first 50 electric Pokémon
  pokedex types electric

  # List the first 10 as JSON
  pokedex types water --limit 10 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTypesCmd,
	}

	addReportFlags(cmd)
	cmd.Flags().IntP("limit", "l", 0,
		"Maximum number of Pokémon to list (default from config)")

	return cmd
}

// runTypesCmd executes the types command.
func runTypesCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", limit)
	}

	var extra []pokedex.Option
	if limit > 0 {
		extra = append(extra, pokedex.WithListingLimit(limit))
	}

	a, err := newApp(cmd, nil, extra...)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	w, closeReport, err := openReport(cmd, a.cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeReport()

	if len(args) == 0 {
		types, err := a.service.Types(ctx)
		if err != nil {
			return err
		}
		_, err = w.WriteTypes(types)
		return err
	}

	listing, err := a.service.PokemonOfType(ctx, args[0])
	if err != nil {
		return err
	}
	_, err = w.WriteListing(listing)
	return err
}
