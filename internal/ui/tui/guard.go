package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// panicGuard runs the browser so that a panic while handling a message
// or rendering never leaves the terminal in the alternate screen.
// After a panic the browser starts over on the search view with the
// failure shown in the output card.
type panicGuard struct {
	inner  browser
	logger *slog.Logger
}

func guard(b browser, logger *slog.Logger) panicGuard {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return panicGuard{inner: b, logger: logger}
}

func (g panicGuard) Init() tea.Cmd {
	return g.inner.Init()
}

func (g panicGuard) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			g.report("update", r, msg)
			g.inner = g.inner.afterPanic()
			next, cmd = g, nil
		}
	}()

	updated, cmd := g.inner.Update(msg)
	if b, ok := updated.(browser); ok {
		g.inner = b
	}
	return g, cmd
}

func (g panicGuard) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			g.report("view", r, nil)
			view = g.inner.theme.Error.Render(unexpectedErrorText)
		}
	}()
	return g.inner.View()
}

func (g panicGuard) report(phase string, r any, msg tea.Msg) {
	attrs := []any{"phase", phase, "mode", g.inner.mode, "panic", fmt.Sprint(r)}
	if msg != nil {
		attrs = append(attrs, "msg", fmt.Sprintf("%T", msg))
	}
	attrs = append(attrs, "stack", string(debug.Stack()))
	g.logger.Error("pokedex browser panicked", attrs...)
}

// afterPanic returns the browser on the search view. Pending results are
// dropped and the last input is kept so the user can retry.
func (m browser) afterPanic() browser {
	m.mode = modeSearch
	m.seq++
	m.loading = false
	m.entry = nil
	m.errText = unexpectedErrorText
	m.input.Focus()
	return m
}

var _ tea.Model = panicGuard{}
