package pokedex

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nao1215/pokedex/internal/cache"
	"github.com/nao1215/pokedex/internal/model"
)

// API is the subset of *pokeapi.Client the service needs.
type API interface {
	Pokemon(ctx context.Context, name string) (*model.Pokemon, error)
	Species(ctx context.Context, name string) (*model.Species, error)
	EvolutionChain(ctx context.Context, chainURL string) (*model.EvolutionChain, error)
	Types(ctx context.Context) (*model.NamedResourceList, error)
	Type(ctx context.Context, name string) (*model.Type, error)
	Image(ctx context.Context, imageURL string) ([]byte, error)
}

// HistoryRecorder stores lookups. *database.PokeDB implements it.
type HistoryRecorder interface {
	RecordLookup(ctx context.Context, name string, found bool) error
}

// Service performs Pokédex operations over a PokeAPI client.
// It is safe for concurrent use.
type Service struct {
	api          API
	caches       *cache.Set
	history      HistoryRecorder
	logger       *slog.Logger
	concurrency  int
	listingLimit int
	excluded     []string
	fetchSprites bool

	// inflight collapses concurrent fetches of the same Pokémon,
	// which happen when a batch contains one evolution line.
	inflight singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHistory records every lookup.
func WithHistory(h HistoryRecorder) Option {
	return func(s *Service) {
		s.history = h
	}
}

// WithConcurrency sets how many sprite downloads or batch lookups run at once.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithListingLimit sets how many Pokémon a type listing shows.
// Non-positive values are ignored.
func WithListingLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.listingLimit = n
		}
	}
}

// WithExcludedTypes replaces the type names hidden by Types.
func WithExcludedTypes(names []string) Option {
	return func(s *Service) {
		s.excluded = slices.Clone(names)
	}
}

// WithSprites controls whether Lookup downloads sprite images.
func WithSprites(enabled bool) Option {
	return func(s *Service) {
		s.fetchSprites = enabled
	}
}

// New creates a Service. By default it downloads sprites, lists 50
// Pokémon per type and hides the unknown and shadow types.
func New(api API, opts ...Option) *Service {
	s := &Service{
		api:          api,
		caches:       cache.NewSet(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency:  4,
		listingLimit: model.DefaultListingLimit,
		excluded:     slices.Clone(model.DefaultExcludedTypes),
		fetchSprites: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Caches returns the session caches.
func (s *Service) Caches() *cache.Set {
	return s.caches
}

// Lookup returns a Pokémon's summary together with its evolution line.
//
// Only a failure to fetch the Pokémon itself fails the lookup. When the
// evolution line cannot be retrieved, the entry is returned with
// EvolutionError set; a sprite that cannot be downloaded marks its stage
// with an image error.
func (s *Service) Lookup(ctx context.Context, name string) (*model.Entry, error) {
	display := strings.TrimSpace(name)
	key := model.NormalizeName(name)
	if key == "" {
		return nil, ErrEmptyName
	}

	p, err := s.pokemon(ctx, key)
	if err != nil {
		s.record(ctx, key, false)
		s.logger.Debug("pokemon lookup failed", "name", key, "error", err)
		return nil, newError(ErrPokemonNotFound, display, err)
	}
	s.record(ctx, key, true)

	entry := model.NewEntry(p)

	chain, err := s.Evolution(ctx, display)
	if err != nil {
		s.logger.Debug("evolution lookup failed", "name", key, "error", err)
		entry.EvolutionError = err.Error()
		return entry, nil
	}

	entry.Evolution = s.stages(ctx, chain, key)
	return entry, nil
}

// Evolution returns the flattened evolution line containing name.
// The line is cached under every member's name.
func (s *Service) Evolution(ctx context.Context, name string) ([]string, error) {
	display := strings.TrimSpace(name)
	key := model.NormalizeName(name)
	if key == "" {
		return nil, ErrEmptyName
	}

	if chain, ok := s.caches.Evolutions.Get(key); ok {
		return slices.Clone(chain), nil
	}

	species, err := s.api.Species(ctx, key)
	if err != nil {
		return nil, newError(ErrSpeciesNotFound, display, err)
	}

	resp, err := s.api.EvolutionChain(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, newError(ErrEvolutionUnavailable, display, err)
	}

	chain := model.FlattenChain(resp.Chain)
	s.caches.PutEvolution(chain)
	s.logger.Debug("cached evolution line", "chain", chain)

	return slices.Clone(chain), nil
}

// ImageURL returns the default sprite URL of name, or "" when PokeAPI
// has none.
func (s *Service) ImageURL(ctx context.Context, name string) (string, error) {
	display := strings.TrimSpace(name)
	key := model.NormalizeName(name)
	if key == "" {
		return "", ErrEmptyName
	}

	if u, ok := s.caches.ImageURLs.Get(key); ok {
		return u, nil
	}

	p, err := s.pokemon(ctx, key)
	if err != nil {
		return "", newError(ErrPokemonNotFound, display, err)
	}
	return p.SpriteURL(), nil
}

// Types returns the browsable type names in API order.
func (s *Service) Types(ctx context.Context) ([]string, error) {
	list, err := s.api.Types(ctx)
	if err != nil {
		return nil, newError(ErrTypesUnavailable, "", err)
	}
	return model.BrowsableTypes(list, s.excluded), nil
}

// PokemonOfType lists the Pokémon of a type, sorted, truncated to the
// listing limit. Total still reports the full count.
func (s *Service) PokemonOfType(ctx context.Context, typeName string) (*model.TypeListing, error) {
	display := strings.TrimSpace(typeName)
	key := model.NormalizeName(typeName)

	members, ok := s.caches.TypeMembers.Get(key)
	if !ok {
		t, err := s.api.Type(ctx, key)
		if err != nil {
			return nil, newError(ErrTypeUnavailable, display, err)
		}
		members = t.MemberNames()
		s.caches.TypeMembers.Put(key, members)
	}

	return model.NewTypeListing(key, members, s.listingLimit), nil
}

// Result is the outcome of one lookup in a batch.
type Result struct {
	// Index is the position of Name in the requested slice.
	Index int
	Name  string
	Entry *model.Entry
	Err   error
}

// LookupMany looks up names concurrently and calls fn once per name in
// completion order. Calls to fn are serialized. A failed lookup is
// reported through Result.Err and does not stop the batch; the returned
// error is only set when ctx is cancelled.
func (s *Service) LookupMany(ctx context.Context, names []string, fn func(Result)) error {
	s.logger.Debug("starting batch lookup", "total", len(names), "concurrency", s.concurrency)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, name := range names {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			entry, err := s.Lookup(ctx, name)

			mu.Lock()
			defer mu.Unlock()
			fn(Result{Index: i, Name: name, Entry: entry, Err: err})
			return nil
		})
	}

	return g.Wait()
}

// pokemon returns cached Pokémon data or fetches it, filling the
// Pokémon and image URL caches.
//
// The shared fetch is detached from the caller that started it, so a
// caller whose deadline expires only abandons its own wait; callers
// that joined the same fetch still receive the result. The request is
// still bounded by the client's timeout and retry budget.
func (s *Service) pokemon(ctx context.Context, key string) (*model.Pokemon, error) {
	if p, ok := s.caches.Pokemon.Get(key); ok {
		return p, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(key, func() (any, error) {
		p, err := s.api.Pokemon(fetchCtx, key)
		if err != nil {
			return nil, err
		}
		s.caches.Pokemon.Put(key, p)
		s.caches.ImageURLs.Put(key, p.SpriteURL())
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Pokemon), nil //nolint:forcetypeassert // the group only stores *model.Pokemon
	}
}

// stages builds the evolution line, resolving sprite URLs and images
// concurrently.
func (s *Service) stages(ctx context.Context, chain []string, current string) []model.EvolutionStage {
	stages := make([]model.EvolutionStage, len(chain))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, name := range chain {
		stages[i] = model.EvolutionStage{Name: name, Current: strings.EqualFold(name, current)}

		g.Go(func() error {
			u, err := s.ImageURL(ctx, name)
			if err != nil {
				// Shown as "(No image)", as PokeAPI has no Pokémon for this species name.
				s.logger.Debug("no image url", "name", name, "error", err)
				return nil
			}
			stages[i].SpriteURL = u
			if u == "" || !s.fetchSprites {
				return nil
			}

			data, err := s.api.Image(ctx, u)
			if err != nil {
				s.logger.Debug("sprite download failed", "name", name, "url", u, "error", err)
				stages[i].ImageError = err.Error()
				return nil
			}
			stages[i].Sprite = data
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines record failures on their stage

	return stages
}

func (s *Service) record(ctx context.Context, name string, found bool) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordLookup(ctx, name, found); err != nil {
		s.logger.Warn("failed to record lookup", "name", name, "error", err)
	}
}
