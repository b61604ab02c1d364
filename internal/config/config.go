package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/pokedex/internal/model"
)

// Default configuration values.
const (
	// DefaultBaseURL is the public PokeAPI v2 endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultTimeout bounds each HTTP request including reading the body.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the sustained number of requests per second.
	// PokeAPI is free and asks clients to cache aggressively and be gentle.
	DefaultRateLimit = 10.0

	// DefaultBurst is the token bucket size for the rate limiter.
	DefaultBurst = 5

	// DefaultMaxRetries is the number of retries after a transient failure.
	DefaultMaxRetries = 3

	// DefaultInitialBackoff is the first retry delay; it doubles per attempt.
	DefaultInitialBackoff = 500 * time.Millisecond

	// DefaultCacheTTL is how long a stored API response is served from the
	// database. PokeAPI data changes only with new game releases.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// DefaultConcurrency is the number of sprite downloads or lookups in flight.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "pokedex"

	// DefaultUserAgent identifies pokedex in HTTP requests.
	DefaultUserAgent = "pokedex/1.0 (+https://github.com/nao1215/pokedex)"

	// DefaultMaxBodySize limits the response body size. The largest PokeAPI
	// resources (some /type/ documents) are a few hundred kilobytes.
	DefaultMaxBodySize = 8 * 1024 * 1024 // 8MB

	// DefaultSearchName is the name pre-filled in the interactive browser.
	DefaultSearchName = "pikachu"
)

// Config holds all configuration options for pokedex.
// It is populated from defaults, the optional YAML file and CLI flags,
// in that order, and passed down explicitly instead of living in globals.
type Config struct {
	// BaseURL is the PokeAPI root, without a trailing slash.
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Headers are extra HTTP headers sent with every request.
	// Useful when PokeAPI is reached through an authenticating mirror.
	Headers map[string]string

	// Proxy is an optional SOCKS5 proxy URL such as "socks5://127.0.0.1:1080".
	Proxy string

	// RateLimit is the sustained requests per second. Zero disables limiting.
	RateLimit float64

	// Burst is the rate limiter bucket size.
	Burst int

	// MaxRetries is the number of retries for transient failures.
	MaxRetries int

	// InitialBackoff is the first retry delay.
	InitialBackoff time.Duration

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// CacheEnabled turns the persistent SQLite response cache on.
	CacheEnabled bool

	// CacheDir is the directory holding pokedex.db.
	// Defaults to the XDG data directory.
	CacheDir string

	// CacheTTL is how long stored responses are considered fresh.
	CacheTTL time.Duration

	// ListingLimit is the maximum number of Pokémon shown for a type.
	ListingLimit int

	// ExcludedTypes are type names hidden from type browsing.
	ExcludedTypes []string

	// Concurrency is the number of parallel sprite downloads and lookups.
	Concurrency int

	// FetchSprites downloads sprite images during a lookup.
	FetchSprites bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		Headers:        map[string]string{},
		RateLimit:      DefaultRateLimit,
		Burst:          DefaultBurst,
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		MaxBodySize:    DefaultMaxBodySize,
		CacheEnabled:   true,
		CacheDir:       XDGDataDir(),
		CacheTTL:       DefaultCacheTTL,
		ListingLimit:   model.DefaultListingLimit,
		ExcludedTypes:  append([]string(nil), model.DefaultExcludedTypes...),
		Concurrency:    DefaultConcurrency,
		FetchSprites:   true,
	}
}

// XDGDataDir returns the XDG data directory for pokedex.
// On Linux: ~/.local/share/pokedex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pokedex.
// On Linux: ~/.config/pokedex
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGStateDir returns the XDG state directory for pokedex.
// The interactive browser writes its log file here.
// On Linux: ~/.local/state/pokedex
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrEmptyBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.CacheEnabled && c.CacheDir == "" {
		return ErrEmptyCacheDir
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	return nil
}
