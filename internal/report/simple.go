package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/pokedex/internal/model"
)

// SimpleWriter outputs the plain text a user reads in a terminal.
// The summary block is exactly "Name: ...\nHeight: ...\nWeight: ...\n
// Abilities: ...", followed by the evolution line.
type SimpleWriter struct {
	baseWriter

	// verbose adds ID, types and base stats to entries.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteEntry outputs the summary and evolution line.
func (w *SimpleWriter) WriteEntry(entry *model.Entry) (int, error) {
	var sb strings.Builder

	sb.WriteString(entry.Summary.String())
	sb.WriteString("\n")

	if w.verbose {
		sb.WriteString(fmt.Sprintf("ID: %d\n", entry.ID))
		sb.WriteString(fmt.Sprintf("Types: %s\n", strings.Join(entry.Types, ", ")))
		sb.WriteString(fmt.Sprintf("Base experience: %d\n", entry.BaseExperience))
		for _, s := range entry.Stats {
			sb.WriteString(fmt.Sprintf("  %-16s %3d\n", s.Name, s.Value))
		}
		sb.WriteString(fmt.Sprintf("  %-16s %3d\n", "total", entry.TotalBaseStats()))
	}

	sb.WriteString("\n")
	w.writeStages(&sb, entry)

	return w.output.Write([]byte(sb.String()))
}

// writeStages writes one line per evolution stage. The looked up stage
// is marked with an arrow since plain text has no bold.
func (w *SimpleWriter) writeStages(sb *strings.Builder, entry *model.Entry) {
	if entry.EvolutionError != "" {
		sb.WriteString("❌ " + entry.EvolutionError + "\n")
		return
	}

	sb.WriteString("Evolution line:\n")
	width := 0
	for _, s := range entry.Evolution {
		width = max(width, len(s.DisplayName()))
	}
	for i, s := range entry.Evolution {
		marker := "  "
		if s.Current {
			marker = "> "
		}
		line := fmt.Sprintf("%s%d. %-*s", marker, i+1, width, s.DisplayName())
		if status := s.ImageStatus(); status != "" {
			line += "  " + status
		}
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

// WriteTypes outputs one capitalized type name per line.
func (w *SimpleWriter) WriteTypes(types []string) (int, error) {
	var sb strings.Builder
	sb.WriteString("Select a type to browse Pokémon:\n")
	for _, t := range types {
		sb.WriteString("  " + model.Capitalize(t) + "\n")
	}
	return w.output.Write([]byte(sb.String()))
}

// WriteListing outputs the member names of a type.
func (w *SimpleWriter) WriteListing(listing *model.TypeListing) (int, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d Pokémon of type '%s':\n", listing.Total, model.Capitalize(listing.Type)))
	for _, name := range listing.Members {
		sb.WriteString("  " + model.Capitalize(name) + "\n")
	}
	if listing.Truncated() {
		sb.WriteString(fmt.Sprintf("  ... showing the first %d\n", len(listing.Members)))
	}
	return w.output.Write([]byte(sb.String()))
}

// WriteEvolution outputs the line as "A -> [B] -> C" plus its neighbors.
func (w *SimpleWriter) WriteEvolution(line *model.EvolutionLine) (int, error) {
	parts := make([]string, len(line.Chain))
	for i, name := range line.Chain {
		parts[i] = model.Capitalize(name)
		if strings.EqualFold(name, line.Name) {
			parts[i] = "[" + parts[i] + "]"
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(parts, " -> ") + "\n")
	sb.WriteString("Previous: " + orNone(line.Previous) + "\n")
	sb.WriteString("Next:     " + orNone(line.Next) + "\n")
	return w.output.Write([]byte(sb.String()))
}

func orNone(name string) string {
	if name == "" {
		return "(none)"
	}
	return model.Capitalize(name)
}
