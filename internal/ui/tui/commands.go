package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func requestContext(deps Deps) (context.Context, context.CancelFunc) {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

func cmdLookup(deps Deps, seq int, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(deps)
		defer cancel()

		entry, err := deps.Service.Lookup(ctx, name)
		if err != nil {
			deps.Logger.Warn("lookup failed", "name", name, "error", err)
		}
		return lookupDoneMsg{seq: seq, entry: entry, err: err}
	}
}

func cmdLoadTypes(deps Deps, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(deps)
		defer cancel()

		types, err := deps.Service.Types(ctx)
		if err != nil {
			deps.Logger.Warn("type list failed", "error", err)
		}
		return typesLoadedMsg{seq: seq, types: types, err: err}
	}
}

func cmdLoadListing(deps Deps, seq int, typeName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(deps)
		defer cancel()

		listing, err := deps.Service.PokemonOfType(ctx, typeName)
		if err != nil {
			deps.Logger.Warn("type listing failed", "type", typeName, "error", err)
		}
		return listingLoadedMsg{seq: seq, listing: listing, err: err}
	}
}
