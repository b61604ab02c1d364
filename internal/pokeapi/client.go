package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nao1215/pokedex/internal/config"
	"github.com/nao1215/pokedex/internal/model"
	"github.com/nao1215/pokedex/internal/retry"
)

// typeListLimit is large enough to return every type in one page.
// PokeAPI pages list endpoints at 20 results by default.
const typeListLimit = 100

// Options configures a Client.
type Options struct {
	// BaseURL is the API root without a trailing slash.
	BaseURL string

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Headers are added to every request.
	Headers map[string]string

	// Proxy is an optional socks5://[user:pass@]host:port URL.
	Proxy string

	// RateLimit is the sustained request rate per second.
	// Zero or negative disables limiting.
	RateLimit float64

	// Burst is the number of requests allowed at once.
	Burst int

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// InitialBackoff is the wait before the first retry. It doubles
	// after each retry; 429 responses wait eight times as long.
	InitialBackoff time.Duration

	// MaxBodySize limits how many bytes are read from a response.
	MaxBodySize int64

	// Store, if set, persists JSON responses between runs.
	Store ResponseStore

	// Sprites, if set, persists downloaded images between runs.
	Sprites SpriteStore

	// TTL is how long stored responses are served. Zero means forever.
	TTL time.Duration

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// OptionsFromConfig maps application configuration to client options.
// The store fields are left empty; the caller wires them when caching is on.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		UserAgent:      cfg.UserAgent,
		Headers:        cfg.Headers,
		Proxy:          cfg.Proxy,
		RateLimit:      cfg.RateLimit,
		Burst:          cfg.Burst,
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBodySize:    cfg.MaxBodySize,
		TTL:            cfg.CacheTTL,
	}
}

// Client talks to PokeAPI. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	policy     retry.Policy
	maxBody    int64
	store      ResponseStore
	sprites    SpriteStore
	ttl        time.Duration
	logger     *slog.Logger
}

// New creates a Client. Zero-valued options fall back to the defaults in
// the config package.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = config.DefaultMaxBodySize
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	httpClient, err := newHTTPClient(opts)
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	logger := opts.Logger
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, opts.Burst),
		maxBody:    opts.MaxBodySize,
		store:      opts.Store,
		sprites:    opts.Sprites,
		ttl:        opts.TTL,
		logger:     logger,
		policy: retry.Policy{
			MaxAttempts:      opts.MaxRetries + 1,
			InitialBackoff:   opts.InitialBackoff,
			RateLimitBackoff: 8 * opts.InitialBackoff,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				logger.Debug("retrying request", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Pokemon fetches /pokemon/{name}.
func (c *Client) Pokemon(ctx context.Context, name string) (*model.Pokemon, error) {
	key, err := resourceKey(name)
	if err != nil {
		return nil, err
	}
	var p model.Pokemon
	if err := c.getJSON(ctx, KindPokemon, key, c.endpoint("pokemon", key), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Species fetches /pokemon-species/{name}.
func (c *Client) Species(ctx context.Context, name string) (*model.Species, error) {
	key, err := resourceKey(name)
	if err != nil {
		return nil, err
	}
	var s model.Species
	if err := c.getJSON(ctx, KindSpecies, key, c.endpoint("pokemon-species", key), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// EvolutionChain fetches the chain at chainURL, as referenced by a species.
func (c *Client) EvolutionChain(ctx context.Context, chainURL string) (*model.EvolutionChain, error) {
	if strings.TrimSpace(chainURL) == "" {
		return nil, ErrEmptyName
	}
	var chain model.EvolutionChain
	if err := c.getJSON(ctx, KindEvolutionChain, chainURL, chainURL, &chain); err != nil {
		return nil, err
	}
	return &chain, nil
}

// Types fetches the list of all types.
func (c *Client) Types(ctx context.Context) (*model.NamedResourceList, error) {
	u := fmt.Sprintf("%s/type/?limit=%d", c.baseURL, typeListLimit)
	var list model.NamedResourceList
	if err := c.getJSON(ctx, KindTypeList, "all", u, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Type fetches /type/{name}.
func (c *Client) Type(ctx context.Context, name string) (*model.Type, error) {
	key, err := resourceKey(name)
	if err != nil {
		return nil, err
	}
	var t model.Type
	if err := c.getJSON(ctx, KindType, key, c.endpoint("type", key), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Image downloads the bytes at imageURL, typically a sprite PNG.
func (c *Client) Image(ctx context.Context, imageURL string) ([]byte, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, ErrEmptyName
	}

	if c.sprites != nil {
		data, ok, err := c.sprites.GetSprite(ctx, imageURL)
		if err != nil {
			c.logger.Warn("sprite store read failed", "url", imageURL, "error", err)
		} else if ok {
			return data, nil
		}
	}

	data, err := c.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	if c.sprites != nil {
		if err := c.sprites.PutSprite(ctx, imageURL, data); err != nil {
			c.logger.Warn("sprite store write failed", "url", imageURL, "error", err)
		}
	}
	return data, nil
}

// resourceKey lower-cases and trims a resource name.
func resourceKey(name string) (string, error) {
	key := model.NormalizeName(name)
	if key == "" {
		return "", ErrEmptyName
	}
	return key, nil
}

func (c *Client) endpoint(resource, key string) string {
	return c.baseURL + "/" + resource + "/" + url.PathEscape(key)
}

// getJSON decodes the resource at u into out, consulting the store first.
func (c *Client) getJSON(ctx context.Context, kind, key, u string, out any) error {
	if c.store != nil {
		body, ok, err := c.store.GetResponse(ctx, kind, key, c.ttl)
		switch {
		case err != nil:
			c.logger.Warn("response store read failed", "kind", kind, "key", key, "error", err)
		case ok:
			if err := json.Unmarshal(body, out); err == nil {
				c.logger.Debug("served from store", "kind", kind, "key", key)
				return nil
			}
			c.logger.Warn("discarding undecodable stored response", "kind", kind, "key", key)
		}
	}

	body, err := c.fetch(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", u, err)
	}

	if c.store != nil {
		if err := c.store.PutResponse(ctx, kind, key, body); err != nil {
			c.logger.Warn("response store write failed", "kind", kind, "key", key, "error", err)
		}
	}
	return nil
}

// fetch performs a rate-limited GET with retries and returns the body.
func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	return retry.Do(ctx, c.policy, classify, func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return c.fetchOnce(ctx, u)
	})
}

func (c *Client) fetchOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug("GET", "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, u, c.maxBody)
	}
	return body, nil
}

// classify decides whether a failed attempt is worth repeating.
func classify(err error) retry.Action {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return retry.After
		}
		if statusErr.Temporary() {
			return retry.Retry
		}
		return retry.Stop
	case errors.Is(err, ErrBodyTooLarge),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return retry.Stop
	default:
		return retry.Retry
	}
}
