package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/pokedex/internal/model"
)

func (m browser) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	var b strings.Builder
	b.WriteString(m.theme.Banner.Render("Pokédex"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render(m.modeTitle()))
	b.WriteString("\n\n")

	switch m.mode {
	case modeTypes:
		b.WriteString(m.types.View())
	case modeListing:
		b.WriteString(m.members.View())
	default:
		b.WriteString(m.input.View())
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading...\n\n")
	}

	if out := m.output(); out != "" {
		b.WriteString(m.theme.Card.Render(out))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(m.helpText()))
	return wrap.Render(b.String())
}

func (m browser) modeTitle() string {
	if m.mode == modeSearch {
		return "Search by Name"
	}
	return "Browse by Type"
}

func (m browser) helpText() string {
	switch m.mode {
	case modeTypes:
		return "↑/↓ navigate • enter list Pokémon • / filter • tab search by name • ctrl+l clear • ctrl+c quit"
	case modeListing:
		return "↑/↓ navigate • enter look up • / filter • esc types • tab search by name • ctrl+l clear • ctrl+c quit"
	default:
		return "enter search • tab browse by type • ctrl+l clear • ctrl+c quit"
	}
}

// output renders the error line or the last looked up entry.
func (m browser) output() string {
	if m.errText != "" {
		return m.theme.Error.Render("❌ " + m.errText)
	}
	if m.entry == nil {
		return ""
	}
	return renderEntry(m.theme, m.entry)
}

func renderEntry(t Theme, entry *model.Entry) string {
	var b strings.Builder
	b.WriteString(entry.Summary.String())
	b.WriteString("\n\n")

	if entry.EvolutionError != "" {
		b.WriteString(t.Error.Render("❌ " + entry.EvolutionError))
		return b.String()
	}

	b.WriteString("Evolution line:")
	for i, s := range entry.Evolution {
		name := s.DisplayName()
		if s.Current {
			name = t.Current.Render(name)
		}
		line := fmt.Sprintf("%d. %s", i+1, name)
		if status := s.ImageStatus(); status != "" {
			line += "  " + t.Marker.Render(status)
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}
