package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/pokedex/internal/model"
)

// JSONWriter outputs results as JSON, one document per call.
//
// Design decision: We use standard encoding/json; the model types carry
// their JSON tags and PokeAPI itself is plain JSON.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteEntry outputs the entry.
func (w *JSONWriter) WriteEntry(entry *model.Entry) (int, error) {
	return w.writeJSON(entry)
}

// typesDocument wraps a type list so the output is an object.
type typesDocument struct {
	Types []string `json:"types"`
}

// WriteTypes outputs {"types": [...]}.
func (w *JSONWriter) WriteTypes(types []string) (int, error) {
	if types == nil {
		types = []string{}
	}
	return w.writeJSON(typesDocument{Types: types})
}

// WriteListing outputs the listing.
func (w *JSONWriter) WriteListing(listing *model.TypeListing) (int, error) {
	return w.writeJSON(listing)
}

// WriteEvolution outputs the evolution line.
func (w *JSONWriter) WriteEvolution(line *model.EvolutionLine) (int, error) {
	return w.writeJSON(line)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline so consecutive documents form JSON Lines.
	data = append(data, '\n')

	return w.output.Write(data)
}
