package config

import "time"

// File represents the structure of the .pokedex configuration file.
// Every field is optional; zero values leave the current setting untouched.
type File struct {
	API     APIFile     `yaml:"api,omitempty"`
	Cache   CacheFile   `yaml:"cache,omitempty"`
	Display DisplayFile `yaml:"display,omitempty"`
}

// APIFile holds PokeAPI client settings.
type APIFile struct {
	BaseURL        string            `yaml:"baseURL,omitempty"`
	Timeout        time.Duration     `yaml:"timeout,omitempty"`
	UserAgent      string            `yaml:"userAgent,omitempty"`
	Headers        map[string]string `yaml:"headers,omitempty"`
	Proxy          string            `yaml:"proxy,omitempty"`
	RateLimit      *float64          `yaml:"rateLimit,omitempty"`
	Burst          int               `yaml:"burst,omitempty"`
	MaxRetries     *int              `yaml:"maxRetries,omitempty"`
	InitialBackoff time.Duration     `yaml:"initialBackoff,omitempty"`
	MaxBodySize    int64             `yaml:"maxBodySize,omitempty"`
}

// CacheFile holds persistent cache settings.
type CacheFile struct {
	// Enabled is a pointer so that "enabled: false" can be told apart from unset.
	Enabled *bool         `yaml:"enabled,omitempty"`
	Dir     string        `yaml:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl,omitempty"`
}

// DisplayFile holds output settings.
type DisplayFile struct {
	ListingLimit  int      `yaml:"listingLimit,omitempty"`
	ExcludedTypes []string `yaml:"excludedTypes,omitempty"`
	Concurrency   int      `yaml:"concurrency,omitempty"`
	FetchSprites  *bool    `yaml:"fetchSprites,omitempty"`
}

// Apply overlays the non-zero settings of the file onto cfg.
// Headers are merged, with file values winning over existing keys.
func (f *File) Apply(cfg *Config) {
	api := f.API
	if api.BaseURL != "" {
		cfg.BaseURL = api.BaseURL
	}
	if api.Timeout > 0 {
		cfg.Timeout = api.Timeout
	}
	if api.UserAgent != "" {
		cfg.UserAgent = api.UserAgent
	}
	if len(api.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		for k, v := range api.Headers {
			cfg.Headers[k] = v
		}
	}
	if api.Proxy != "" {
		cfg.Proxy = api.Proxy
	}
	if api.RateLimit != nil {
		cfg.RateLimit = *api.RateLimit
	}
	if api.Burst > 0 {
		cfg.Burst = api.Burst
	}
	if api.MaxRetries != nil {
		cfg.MaxRetries = *api.MaxRetries
	}
	if api.InitialBackoff > 0 {
		cfg.InitialBackoff = api.InitialBackoff
	}
	if api.MaxBodySize > 0 {
		cfg.MaxBodySize = api.MaxBodySize
	}

	if f.Cache.Enabled != nil {
		cfg.CacheEnabled = *f.Cache.Enabled
	}
	if f.Cache.Dir != "" {
		cfg.CacheDir = f.Cache.Dir
	}
	if f.Cache.TTL > 0 {
		cfg.CacheTTL = f.Cache.TTL
	}

	if f.Display.ListingLimit > 0 {
		cfg.ListingLimit = f.Display.ListingLimit
	}
	if len(f.Display.ExcludedTypes) > 0 {
		cfg.ExcludedTypes = f.Display.ExcludedTypes
	}
	if f.Display.Concurrency > 0 {
		cfg.Concurrency = f.Display.Concurrency
	}
	if f.Display.FetchSprites != nil {
		cfg.FetchSprites = *f.Display.FetchSprites
	}
}
