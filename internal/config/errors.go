package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// They are sentinels so callers can use errors.Is.
var (
	// ErrEmptyBaseURL is returned when no PokeAPI base URL is configured.
	ErrEmptyBaseURL = errors.New("invalid base url: must not be empty")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRateLimit is returned when the rate limit is negative.
	// Use 0 to disable client-side rate limiting.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidMaxRetries is returned when the retry count is negative.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must not be negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrEmptyCacheDir is returned when the cache is enabled without a directory.
	ErrEmptyCacheDir = errors.New("invalid cache directory: must not be empty when the cache is enabled")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	ErrInvalidCacheTTL = errors.New("invalid cache ttl: must be non-negative")
)
