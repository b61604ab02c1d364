package tui

import (
	"context"
	"errors"

	"github.com/nao1215/pokedex/internal/pokedex"
)

const unexpectedErrorText = "Unexpected error (see logs)"

// userMessage turns an error into the one line shown in the output pane.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var pe *pokedex.Error
	switch {
	case errors.Is(err, pokedex.ErrEmptyName):
		return "Enter a Pokémon name."
	case errors.As(err, &pe):
		return pe.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out."
	default:
		return unexpectedErrorText
	}
}
