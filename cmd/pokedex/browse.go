package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/config"
	pokelog "github.com/nao1215/pokedex/internal/log"
	"github.com/nao1215/pokedex/internal/ui/tui"
)

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [name]",
		Short: "Browse the Pokédex interactively",
		Long: `Browse starts an interactive terminal Pokédex.

Type a name and press enter to look it up, or press tab to browse by type:
pick a type, then pick one of its Pokémon. ctrl+l clears the output and
ctrl+c quits.

Logs are written to pokedex.log in the XDG state directory, since the
terminal is occupied by the browser.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrowseCmd,
	}
}

// runBrowseCmd executes the browse command.
func runBrowseCmd(cmd *cobra.Command, args []string) error {
	logDir := config.XDGStateDir()
	logger, closeLog, err := pokelog.NewFileLogger(logDir, getVerboseFlag(cmd))
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // nothing left to log to

	a, err := newApp(cmd, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := tui.Deps{
		Service: a.service,
		Timeout: a.cfg.Timeout * time.Duration(a.cfg.MaxRetries+1),
		Logger:  logger,
	}
	if len(args) == 1 {
		deps.InitialName = args[0]
	}

	logger.Info("browser started", "cache", a.cfg.CacheEnabled)
	if err := tui.Run(deps); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
