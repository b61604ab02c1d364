package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pokedex.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pokedex",
		Short: "Look up Pokémon and their evolution lines on PokeAPI",
		Long: `pokedex is a terminal Pokédex backed by PokeAPI (https://pokeapi.co).

It shows a Pokémon's name, height, weight and abilities together with its
evolution line, lists Pokémon by type, and offers an interactive browser.

Responses are cached in a SQLite database under the XDG data directory so
repeated lookups work offline. Use --no-cache to always ask PokeAPI.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pokedex in current or home directory)")
	cmd.PersistentFlags().Bool("no-cache", false,
		"Do not read or write the persistent response cache")

	// Add subcommands
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewTypesCmd())
	cmd.AddCommand(NewEvolutionCmd())
	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// errReported marks a failure whose message a command has already
// printed. The process still exits with status 1.
var errReported = errors.New("error already reported")

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err to w unless it was already reported.
func printError(w io.Writer, err error) {
	if errors.Is(err, errReported) {
		return
	}
	fmt.Fprintln(w, err)
}
