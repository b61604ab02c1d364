package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/pokedex/internal/model"
)

// MarkdownWriter outputs results as Markdown pages.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation. It gives us tables, GitHub alerts and mermaid charts
// without hand-escaping pipes and backticks.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteEntry outputs a page with the summary, base stats and evolution line.
func (w *MarkdownWriter) WriteEntry(entry *model.Entry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(fmt.Sprintf("%s #%d", entry.Summary.Name, entry.ID))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Height", strconv.Itoa(entry.Summary.Height)},
			{"Weight", strconv.Itoa(entry.Summary.Weight)},
			{"Abilities", strings.Join(entry.Summary.Abilities, ", ")},
			{"Types", strings.Join(entry.Types, ", ")},
			{"Base Experience", strconv.Itoa(entry.BaseExperience)},
		},
	})
	md.PlainText("")

	w.writeStats(md, entry)
	w.writeStages(md, entry)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeStats writes the base stat table and a pie chart of their shares.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, entry *model.Entry) {
	if len(entry.Stats) == 0 {
		return
	}

	md.H2("Base Stats")
	md.PlainText("")

	rows := make([][]string, 0, len(entry.Stats)+1)
	for _, s := range entry.Stats {
		rows = append(rows, []string{s.Name, strconv.Itoa(s.Value)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(entry.TotalBaseStats()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Stat", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(entry.Summary.Name+" Base Stats"),
		piechart.WithShowData(true),
	)
	for _, s := range entry.Stats {
		if s.Value > 0 {
			chart.LabelAndIntValue(s.Name, uint64(s.Value))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeStages writes the evolution line, current stage in bold.
func (w *MarkdownWriter) writeStages(md *markdown.Markdown, entry *model.Entry) {
	md.H2("Evolution Line")
	md.PlainText("")

	if entry.EvolutionError != "" {
		md.Warningf("%s", entry.EvolutionError)
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(entry.Evolution))
	for i, s := range entry.Evolution {
		name := s.DisplayName()
		if s.Current {
			name = "**" + name + "**"
		}
		sprite := s.ImageStatus()
		if sprite == "" {
			sprite = fmt.Sprintf("![%s](%s)", s.DisplayName(), s.SpriteURL)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), name, sprite})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Pokémon", "Sprite"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(entry.Evolution) == 1 {
		md.Note(entry.Summary.Name + " does not evolve.")
		md.PlainText("")
	}
}

// WriteTypes outputs the type names as a bullet list.
func (w *MarkdownWriter) WriteTypes(types []string) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Pokémon Types")
	md.PlainText("")

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = model.Capitalize(t)
	}
	md.BulletList(names...)
	md.PlainText("")
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteListing outputs the member names of a type.
func (w *MarkdownWriter) WriteListing(listing *model.TypeListing) (int, error) {
	md := markdown.NewMarkdown(w.output)

	typeName := model.TitleName(listing.Type)
	md.H1(typeName + " Pokémon")
	md.PlainText("")
	md.PlainTextf("Found %d Pokémon of type '%s'.", listing.Total, typeName)
	md.PlainText("")

	if len(listing.Members) > 0 {
		names := make([]string, len(listing.Members))
		for i, n := range listing.Members {
			names[i] = model.Capitalize(n)
		}
		md.BulletList(names...)
		md.PlainText("")
	}

	if listing.Truncated() {
		md.Note(fmt.Sprintf("Showing the first %d of %d.", len(listing.Members), listing.Total))
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteEvolution outputs the line as a table with neighbors.
func (w *MarkdownWriter) WriteEvolution(line *model.EvolutionLine) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Evolution of " + model.Capitalize(line.Name))
	md.PlainText("")

	rows := make([][]string, len(line.Chain))
	for i, name := range line.Chain {
		display := model.Capitalize(name)
		if strings.EqualFold(name, line.Name) {
			display = "**" + display + "**"
		}
		rows[i] = []string{strconv.Itoa(i + 1), display}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Pokémon"},
		Rows:   rows,
	})
	md.PlainText("")

	md.BulletList(
		"Previous: "+orNone(line.Previous),
		"Next: "+orNone(line.Next),
	)
	md.PlainText("")
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeFooter writes the page footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Data from [PokeAPI](https://pokeapi.co), generated by [pokedex](https://github.com/nao1215/pokedex)*")
}
