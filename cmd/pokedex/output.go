package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/pokedex/internal/report"
)

// addReportFlags registers the output format flags shared by the
// commands that print Pokédex data.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Also write the output to the specified file (creates directories if needed)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
}

// newFormatWriter returns the writer selected by the format flags.
func newFormatWriter(cmd *cobra.Command, w io.Writer, verbose bool) (report.Writer, error) {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	switch {
	case asJSON:
		return report.NewJSONWriter(w, report.WithPrettyPrint()), nil
	case asMarkdown:
		return report.NewMarkdownWriter(w), nil
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(verbose)), nil
	}
}

// openReport returns a writer that prints to the command's stdout and,
// with --output, to a file as well. The returned function closes the file.
func openReport(cmd *cobra.Command, verbose bool) (report.Writer, func() error, error) {
	stdout, err := newFormatWriter(cmd, cmd.OutOrStdout(), verbose)
	if err != nil {
		return nil, nil, err
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	if outputPath == "" {
		return stdout, func() error { return nil }, nil
	}

	f, err := createOutputFile(outputPath)
	if err != nil {
		return nil, nil, err
	}
	file, err := newFormatWriter(cmd, f, verbose)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return report.NewMultiWriter(stdout, file), f.Close, nil
}

// ensureParentDir creates the directory that will hold path.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
