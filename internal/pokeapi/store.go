package pokeapi

import (
	"context"
	"time"
)

// Resource kinds used as store keys.
const (
	KindPokemon        = "pokemon"
	KindSpecies        = "species"
	KindEvolutionChain = "evolution-chain"
	KindTypeList       = "type-list"
	KindType           = "type"
)

// ResponseStore persists raw JSON response bodies between runs.
// *database.PokeDB implements it.
type ResponseStore interface {
	// GetResponse returns a body younger than maxAge; zero accepts any age.
	GetResponse(ctx context.Context, kind, key string, maxAge time.Duration) ([]byte, bool, error)
	PutResponse(ctx context.Context, kind, key string, body []byte) error
}

// SpriteStore persists downloaded images keyed by URL.
// *database.PokeDB implements it.
type SpriteStore interface {
	GetSprite(ctx context.Context, url string) ([]byte, bool, error)
	PutSprite(ctx context.Context, url string, data []byte) error
}
