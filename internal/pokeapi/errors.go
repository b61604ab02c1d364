package pokeapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyName is returned when a lookup name is empty after trimming.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNotFound matches a *StatusError with status 404.
	ErrNotFound = errors.New("resource not found")

	// ErrBodyTooLarge is returned when a response exceeds Options.MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrInvalidProxy is returned when Options.Proxy is not a socks5 URL.
	ErrInvalidProxy = errors.New("invalid proxy: expected socks5://host:port")
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
