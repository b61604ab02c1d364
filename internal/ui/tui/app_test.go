package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/pokedex/internal/config"
	"github.com/nao1215/pokedex/internal/model"
	"github.com/nao1215/pokedex/internal/pokedex"
)

// fakeService answers from fixed data and records the names looked up.
type fakeService struct {
	mu       sync.Mutex
	looked   []string
	listings map[string]*model.TypeListing
	types    []string
	typesErr error
}

func (f *fakeService) Lookup(_ context.Context, name string) (*model.Entry, error) {
	f.mu.Lock()
	f.looked = append(f.looked, name)
	f.mu.Unlock()

	if name == "missingno" {
		return nil, &pokedex.Error{Kind: pokedex.ErrPokemonNotFound, Name: name, Err: errors.New("404")}
	}
	return &model.Entry{
		Summary: model.Summary{Name: model.Capitalize(name), Height: 4, Weight: 60, Abilities: []string{"static", "lightning-rod"}},
		Evolution: []model.EvolutionStage{
			{Name: "pichu"},
			{Name: "pikachu", SpriteURL: "http://example.test/25.png", Current: true},
			{Name: "raichu", SpriteURL: "http://example.test/26.png", ImageError: "500"},
		},
	}, nil
}

func (f *fakeService) Types(context.Context) ([]string, error) {
	return f.types, f.typesErr
}

func (f *fakeService) PokemonOfType(_ context.Context, typeName string) (*model.TypeListing, error) {
	l, ok := f.listings[typeName]
	if !ok {
		return nil, &pokedex.Error{Kind: pokedex.ErrTypeUnavailable, Name: typeName}
	}
	return l, nil
}

func (f *fakeService) lookups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.looked...)
}

func newFakeService() *fakeService {
	return &fakeService{
		types: []string{"electric", "water"},
		listings: map[string]*model.TypeListing{
			"electric": {Type: "electric", Total: 3, Members: []string{"jolteon", "pichu", "pikachu"}},
		},
	}
}

// runCmd executes cmd and any batched commands, returning the produced
// messages in order.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// press sends a key and feeds every resulting message back into the model.
func press(t *testing.T, m browser, key tea.KeyMsg) browser {
	t.Helper()
	next, cmd := m.Update(key)
	m = next.(browser)
	for _, msg := range runCmd(t, cmd) {
		switch msg.(type) {
		case lookupDoneMsg, typesLoadedMsg, listingLoadedMsg:
			next, _ = m.Update(msg)
			m = next.(browser)
		}
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyClear = tea.KeyMsg{Type: tea.KeyCtrlL}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestBrowser_DefaultName(t *testing.T) {
	t.Parallel()

	m := newBrowser(Deps{Service: newFakeService()})
	if got := m.input.Value(); got != config.DefaultSearchName {
		t.Errorf("input = %q, want %q", got, config.DefaultSearchName)
	}

	m = newBrowser(Deps{Service: newFakeService(), InitialName: "eevee"})
	if got := m.input.Value(); got != "eevee" {
		t.Errorf("input = %q, want eevee", got)
	}
}

func TestBrowser_Search(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	m := newBrowser(Deps{Service: svc})

	next, cmd := m.Update(keyEnter)
	m = next.(browser)
	if !m.loading {
		t.Fatal("expected loading after enter")
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("view should show the loading indicator")
	}

	for _, msg := range runCmd(t, cmd) {
		next, _ = m.Update(msg)
		m = next.(browser)
	}

	if m.loading {
		t.Error("loading should end with the result")
	}
	view := m.View()
	for _, want := range []string{
		"Name: Pikachu",
		"Height: 4",
		"Weight: 60",
		"Abilities: static, lightning-rod",
		"Evolution line:",
		"1. Pichu",
		"(No image)",
		"(Image error)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := svc.lookups(); len(got) != 1 || got[0] != "pikachu" {
		t.Errorf("lookups = %v, want [pikachu]", got)
	}
}

func TestBrowser_SearchNotFound(t *testing.T) {
	t.Parallel()

	m := newBrowser(Deps{Service: newFakeService(), InitialName: "missingno"})
	m = press(t, m, keyEnter)

	if !strings.Contains(m.View(), "Could not find Pokémon: missingno") {
		t.Errorf("view should show the not found message, got:\n%s", m.View())
	}
	if m.entry != nil {
		t.Error("entry should be empty after a failed lookup")
	}
}

func TestBrowser_BrowseByType(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	m := newBrowser(Deps{Service: svc})

	m = press(t, m, keyTab)
	if m.mode != modeTypes {
		t.Fatalf("mode = %v, want types", m.mode)
	}
	if !m.typesLoaded || len(m.types.Items()) != 2 {
		t.Fatalf("types not loaded: %d items", len(m.types.Items()))
	}
	if !strings.Contains(m.View(), "Browse by Type") {
		t.Error("view should show the browse title")
	}

	m = press(t, m, keyEnter)
	if m.mode != modeListing {
		t.Fatalf("mode = %v, want listing", m.mode)
	}
	if m.listingType != "electric" {
		t.Errorf("listing type = %q, want electric", m.listingType)
	}
	if len(m.members.Items()) != 3 {
		t.Errorf("members = %d, want 3", len(m.members.Items()))
	}

	m = press(t, m, keyEnter)
	if got := svc.lookups(); len(got) != 1 || got[0] != "jolteon" {
		t.Errorf("lookups = %v, want [jolteon]", got)
	}
	if m.input.Value() != "jolteon" {
		t.Errorf("input = %q, want jolteon", m.input.Value())
	}

	m = press(t, m, keyEsc)
	if m.mode != modeTypes {
		t.Errorf("esc from listing: mode = %v, want types", m.mode)
	}
	m = press(t, m, keyTab)
	if m.mode != modeSearch {
		t.Errorf("tab from types: mode = %v, want search", m.mode)
	}
	if m.input.Value() != "" || m.entry != nil {
		t.Errorf("tab back to search should start over, input = %q, entry = %v", m.input.Value(), m.entry)
	}

	// The type list is fetched once.
	next, cmd := m.Update(keyTab)
	m = next.(browser)
	if m.loading || cmd != nil {
		t.Error("second visit should reuse the loaded type list")
	}
}

func TestBrowser_TypesError(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	svc.typesErr = &pokedex.Error{Kind: pokedex.ErrTypesUnavailable}
	m := press(t, newBrowser(Deps{Service: svc}), keyTab)

	if m.typesLoaded {
		t.Error("types should not be marked loaded")
	}
	if !strings.Contains(m.View(), "Failed to fetch types.") {
		t.Errorf("view should show the types error, got:\n%s", m.View())
	}
}

func TestBrowser_Clear(t *testing.T) {
	t.Parallel()

	m := press(t, newBrowser(Deps{Service: newFakeService()}), keyEnter)
	if m.entry == nil {
		t.Fatal("expected an entry")
	}

	m = press(t, m, keyClear)
	if m.entry != nil || m.errText != "" {
		t.Error("ctrl+l should clear the output")
	}
	if strings.Contains(m.View(), "Name: Pikachu") {
		t.Error("view should no longer show the entry")
	}
}

func TestBrowser_TabBackToSearchStartsOver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "after a found entry", in: "pikachu"},
		{name: "after an error", in: "missingno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := press(t, newBrowser(Deps{Service: newFakeService(), InitialName: tt.in}), keyEnter)
			if m.entry == nil && m.errText == "" {
				t.Fatal("expected output before switching views")
			}

			m = press(t, m, keyTab)
			m = press(t, m, keyTab)
			if m.mode != modeSearch {
				t.Fatalf("mode = %v, want search", m.mode)
			}
			if m.entry != nil || m.errText != "" || m.input.Value() != "" {
				t.Errorf("entry = %v, errText = %q, input = %q, want all cleared", m.entry, m.errText, m.input.Value())
			}
			if !m.input.Focused() {
				t.Error("input should be focused")
			}
		})
	}
}

func TestBrowser_StaleResultIgnored(t *testing.T) {
	t.Parallel()

	m := newBrowser(Deps{Service: newFakeService()})
	next, _ := m.Update(keyEnter)
	m = next.(browser)
	next, _ = m.Update(keyEnter)
	m = next.(browser)

	next, _ = m.Update(lookupDoneMsg{seq: 1, entry: &model.Entry{Summary: model.Summary{Name: "Pichu"}}})
	m = next.(browser)
	if m.entry != nil || !m.loading {
		t.Error("result of a superseded request should be ignored")
	}

	next, _ = m.Update(lookupDoneMsg{seq: 2, entry: &model.Entry{Summary: model.Summary{Name: "Pikachu"}}})
	m = next.(browser)
	if m.entry == nil || m.entry.Summary.Name != "Pikachu" || m.loading {
		t.Error("latest result should be shown")
	}
}

func TestPanicGuard_RecoversUpdate(t *testing.T) {
	t.Parallel()

	b := press(t, newBrowser(Deps{Service: newFakeService()}), keyEnter)
	b.mode = modeListing
	b.loading = true
	seq := b.seq
	g := guard(b, nil)

	// A listing result without a listing dereferences nil.
	next, cmd := g.Update(listingLoadedMsg{seq: seq})
	if cmd != nil {
		t.Error("recovered update should not return a command")
	}
	pg, ok := next.(panicGuard)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}

	got := pg.inner
	if got.errText != unexpectedErrorText {
		t.Errorf("errText = %q", got.errText)
	}
	if got.mode != modeSearch || got.loading || got.entry != nil {
		t.Errorf("mode = %v, loading = %v, entry = %v, want a fresh search view", got.mode, got.loading, got.entry)
	}
	if got.seq == seq {
		t.Error("pending results should be dropped after a panic")
	}
	if got.input.Value() != config.DefaultSearchName {
		t.Errorf("input = %q, the last input should be kept", got.input.Value())
	}
	if !strings.Contains(pg.View(), unexpectedErrorText) {
		t.Error("view should show the recovery message")
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty name", pokedex.ErrEmptyName, "Enter a Pokémon name."},
		{"not found", &pokedex.Error{Kind: pokedex.ErrPokemonNotFound, Name: "Agumon"}, "Could not find Pokémon: Agumon"},
		{"type", &pokedex.Error{Kind: pokedex.ErrTypeUnavailable, Name: "light"}, "Could not fetch Pokémon of that type."},
		{"timeout", context.DeadlineExceeded, "The request timed out."},
		{"other", errors.New("boom"), unexpectedErrorText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
