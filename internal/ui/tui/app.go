package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/pokedex/internal/config"
	"github.com/nao1215/pokedex/internal/model"
)

type mode int

const (
	modeSearch mode = iota
	modeTypes
	modeListing
)

const (
	listWidth  = 40
	listHeight = 14
)

type nameItem string

func (n nameItem) Title() string       { return model.Capitalize(string(n)) }
func (n nameItem) Description() string { return "" }
func (n nameItem) FilterValue() string { return string(n) }

type browser struct {
	theme Theme
	deps  Deps

	mode    mode
	input   textinput.Model
	types   list.Model
	members list.Model
	spinner spinner.Model

	// seq identifies the latest request; older results are ignored.
	seq     int
	loading bool

	typesLoaded bool
	listingType string

	entry   *model.Entry
	errText string
}

// Run starts the browser on the terminal's alternate screen.
func Run(deps Deps) error {
	m := newBrowser(deps)
	p := tea.NewProgram(guard(m, m.deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newBrowser(deps Deps) browser {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	in := textinput.New()
	in.Placeholder = "Pokémon name"
	in.Prompt = "Name: "
	in.CharLimit = 64
	in.SetValue(config.DefaultSearchName)
	if deps.InitialName != "" {
		in.SetValue(deps.InitialName)
	}
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return browser{
		theme:   DefaultTheme(),
		deps:    deps,
		mode:    modeSearch,
		input:   in,
		types:   newNameList("Select a type", nil),
		members: newNameList("", nil),
		spinner: sp,
	}
}

func newNameList(title string, names []string) list.Model {
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = nameItem(n)
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New(items, d, listWidth, listHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func (m browser) Init() tea.Cmd { return textinput.Blink }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := max(msg.Width-8, listWidth)
		h := max(msg.Height/2, listHeight)
		m.types.SetSize(w, h)
		m.members.SetSize(w, h)
		m.input.Width = w - len(m.input.Prompt)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lookupDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.entry = msg.entry
		m.errText = userMessage(msg.err)
		return m, nil

	case typesLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = userMessage(msg.err)
			return m, nil
		}
		m.typesLoaded = true
		m.types = newNameList("Select a type", msg.types)
		return m, nil

	case listingLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errText = userMessage(msg.err)
			return m, nil
		}
		m.listingType = msg.listing.Type
		m.members = newNameList(listingTitle(msg.listing), msg.listing.Members)
		m.mode = modeListing
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateFocused(msg)
}

// handleKey processes the browser's own bindings. Keys it does not claim
// go to the focused component.
func (m browser) handleKey(msg tea.KeyMsg) (browser, tea.Cmd, bool) {
	if m.filtering() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit, true
		}
		return m, nil, false
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "ctrl+l":
		m.entry = nil
		m.errText = ""
		return m, nil, true

	case "tab":
		if m.mode == modeSearch {
			m.mode = modeTypes
			m.input.Blur()
			if !m.typesLoaded {
				return m.startRequest(func(seq int) tea.Cmd { return cmdLoadTypes(m.deps, seq) })
			}
			return m, nil, true
		}
		// Switching back to search starts over: the input, the card and
		// any pending result are discarded.
		m.mode = modeSearch
		m.seq++
		m.loading = false
		m.entry = nil
		m.errText = ""
		m.input.Reset()
		return m, m.input.Focus(), true

	case "esc":
		switch m.mode {
		case modeListing:
			m.mode = modeTypes
		case modeTypes:
			m.mode = modeSearch
			return m, m.input.Focus(), true
		}
		return m, nil, true

	case "enter":
		switch m.mode {
		case modeSearch:
			name := strings.TrimSpace(m.input.Value())
			return m.startRequest(func(seq int) tea.Cmd { return cmdLookup(m.deps, seq, name) })
		case modeTypes:
			it, ok := m.types.SelectedItem().(nameItem)
			if !ok {
				return m, nil, true
			}
			return m.startRequest(func(seq int) tea.Cmd { return cmdLoadListing(m.deps, seq, string(it)) })
		case modeListing:
			it, ok := m.members.SelectedItem().(nameItem)
			if !ok {
				return m, nil, true
			}
			m.input.SetValue(string(it))
			return m.startRequest(func(seq int) tea.Cmd { return cmdLookup(m.deps, seq, string(it)) })
		}
	}
	return m, nil, false
}

func (m browser) startRequest(build func(seq int) tea.Cmd) (browser, tea.Cmd, bool) {
	m.seq++
	m.loading = true
	m.errText = ""
	return m, tea.Batch(build(m.seq), m.spinner.Tick), true
}

func (m browser) filtering() bool {
	switch m.mode {
	case modeTypes:
		return m.types.FilterState() == list.Filtering
	case modeListing:
		return m.members.FilterState() == list.Filtering
	default:
		return false
	}
}

func (m browser) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeTypes:
		m.types, cmd = m.types.Update(msg)
	case modeListing:
		m.members, cmd = m.members.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func listingTitle(l *model.TypeListing) string {
	title := fmt.Sprintf("Found %d Pokémon of type '%s'", l.Total, model.Capitalize(l.Type))
	if l.Truncated() {
		title += fmt.Sprintf(" (first %d)", len(l.Members))
	}
	return title
}
