package pokeapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// newHTTPClient builds the http.Client used for every request.
func newHTTPClient(opts Options) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if opts.Proxy != "" {
		dialer, err := socks5Dialer(opts.Proxy)
		if err != nil {
			return nil, err
		}
		// A SOCKS5 proxy replaces any HTTP proxy from the environment.
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &http.Client{
		Transport: &headerInjectingTransport{
			base:      transport,
			userAgent: opts.UserAgent,
			headers:   opts.Headers,
		},
		Timeout: opts.Timeout,
	}, nil
}

// socks5Dialer parses a socks5:// or socks5h:// URL, with optional
// user:password credentials, into a dialer.
func socks5Dialer(raw string) (proxy.Dialer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return nil, ErrInvalidProxy
	}
	if u.Hostname() == "" || u.Port() == "" {
		return nil, ErrInvalidProxy
	}

	var auth *proxy.Auth
	if u.User != nil {
		password, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: password}
	}

	dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	return dialer, nil
}

// headerInjectingTransport wraps an http.RoundTripper to set the
// User-Agent and any configured headers on every request.
//
// Design decision: Headers are injected at the transport rather than per
// request so that JSON calls and sprite downloads behave the same. Mirrors
// of PokeAPI sometimes sit behind a gateway that wants an API key header.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}

	return t.base.RoundTrip(clone)
}
