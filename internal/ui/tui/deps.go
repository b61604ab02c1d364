package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/pokedex/internal/model"
)

// Service is the subset of *pokedex.Service the browser needs.
type Service interface {
	Lookup(ctx context.Context, name string) (*model.Entry, error)
	Types(ctx context.Context) ([]string, error)
	PokemonOfType(ctx context.Context, typeName string) (*model.TypeListing, error)
}

// Deps are the collaborators of the browser.
type Deps struct {
	Service Service

	// InitialName prefills the name input. Empty means
	// config.DefaultSearchName.
	InitialName string

	// Timeout bounds every request started from the UI.
	Timeout time.Duration

	Logger *slog.Logger
}

const defaultTimeout = 30 * time.Second
