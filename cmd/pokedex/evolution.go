package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/model"
)

// NewEvolutionCmd creates the evolution command.
func NewEvolutionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evolution <name>",
		Short: "Show the evolution line of a Pokémon",
		Long: `Evolution prints the evolution line containing a Pokémon, from the
first stage to the last, with the stages right before and after it.
Branching lines follow their first branch only.

Examples:
  pokedex evolution pikachu
  pokedex evolution charmeleon --json`,
		Args: cobra.ExactArgs(1),
		RunE: runEvolutionCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runEvolutionCmd executes the evolution command.
func runEvolutionCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	chain, err := a.service.Evolution(ctx, args[0])
	if err != nil {
		return err
	}

	line, ok := model.NewEvolutionLine(chain, args[0])
	if !ok {
		return fmt.Errorf("%s is on a branch of its evolution chain that is not shown: %s",
			model.Capitalize(args[0]), joinCapitalized(chain))
	}

	w, closeReport, err := openReport(cmd, a.cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeReport()

	_, err = w.WriteEvolution(line)
	return err
}

func joinCapitalized(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = model.Capitalize(n)
	}
	return strings.Join(parts, " -> ")
}
