package report

import (
	"io"

	"github.com/nao1215/pokedex/internal/model"
)

// Writer defines the interface for result output.
//
// Design decision: We use an interface so that the CLI can pick a format
// by flag and write to stdout, a file, or both with the same calls.
type Writer interface {
	// WriteEntry outputs a looked up Pokémon with its evolution line.
	WriteEntry(entry *model.Entry) (int, error)

	// WriteTypes outputs the browsable type names.
	WriteTypes(types []string) (int, error)

	// WriteListing outputs the Pokémon of one type.
	WriteListing(listing *model.TypeListing) (int, error)

	// WriteEvolution outputs an evolution line with its neighbors.
	WriteEvolution(line *model.EvolutionLine) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It stops at the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteEntry writes the entry to every Writer.
func (m *MultiWriter) WriteEntry(entry *model.Entry) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteEntry(entry) })
}

// WriteTypes writes the types to every Writer.
func (m *MultiWriter) WriteTypes(types []string) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteTypes(types) })
}

// WriteListing writes the listing to every Writer.
func (m *MultiWriter) WriteListing(listing *model.TypeListing) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteListing(listing) })
}

// WriteEvolution writes the line to every Writer.
func (m *MultiWriter) WriteEvolution(line *model.EvolutionLine) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteEvolution(line) })
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
