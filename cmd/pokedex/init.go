package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/config"
)

//go:embed templates/pokedex.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pokedex configuration file",
		Long: `Initialize creates a new .pokedex configuration file in the current directory.

The generated file documents every setting with its default value:
- PokeAPI endpoint, timeouts, rate limiting and retries
- The response cache location and lifetime
- Type listing and concurrency defaults

Examples:
  # Create .pokedex in current directory
  pokedex init

  # Create config file at a specific path
  pokedex init -o ~/.config/pokedex/config.yaml

  # Force overwrite existing file
  pokedex init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/pokedex.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err := ensureParentDir(outputPath); err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change settings such as:")
	fmt.Fprintln(out, "  - The PokeAPI endpoint and request limits")
	fmt.Fprintln(out, "  - Where and how long responses are cached")
	fmt.Fprintln(out, "  - How many Pokémon a type listing shows")

	return nil
}
