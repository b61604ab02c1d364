// Package pokeapitest provides an in-process fake of PokeAPI for tests.
//
// The fake serves a small, fixed data set:
//
//   - pichu -> pikachu -> raichu (chain 10). pichu has no sprite and
//     raichu's sprite always fails with 500.
//   - eevee -> vaporeon | jolteon (chain 67), a branching chain.
//   - ditto, whose species points at a missing chain (999).
//   - types normal, fire, water, electric, psychic, unknown, shadow.
//     electric lists pikachu twice; normal has 61 members.
//
// Every request is counted per path so tests can assert that cached
// lookups do not reach the network.
package pokeapitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// NormalMembers is the number of Pokémon the fake lists for the normal type.
const NormalMembers = 61

// Server is a fake PokeAPI.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string][]byte
	hits     map[string]int
	forced   map[string]int
	failures map[string]*failure
	sprite   []byte
}

type failure struct {
	status    int
	remaining int
}

// NewServer starts a fake PokeAPI that is closed when the test ends.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	s := &Server{
		routes:   make(map[string][]byte),
		hits:     make(map[string]int),
		forced:   make(map[string]int),
		failures: make(map[string]*failure),
		sprite:   makeSprite(),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	tb.Cleanup(s.Close)

	s.loadFixtures()
	return s
}

// BaseURL returns the API root to configure a client with.
func (s *Server) BaseURL() string {
	return s.URL
}

// SpriteURL returns the sprite URL the fake reports for a Pokémon ID.
func (s *Server) SpriteURL(id int) string {
	return fmt.Sprintf("%s/sprites/%d.png", s.URL, id)
}

// SpritePNG returns the PNG served for every working sprite.
func (s *Server) SpritePNG() []byte {
	return bytes.Clone(s.sprite)
}

// Hits returns how many requests reached path (without trailing slash or query).
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[cleanPath(path)]
}

// TotalHits returns the number of requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// APIHits returns the number of JSON API requests served, leaving out
// sprite downloads.
func (s *Server) APIHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for path, n := range s.hits {
		if !strings.HasPrefix(path, "/sprites/") {
			total += n
		}
	}
	return total
}

// SetStatus makes every request to path answer with status.
func (s *Server) SetStatus(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced[cleanPath(path)] = status
}

// FailNext makes the next n requests to path answer with status.
func (s *Server) FailNext(path string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[cleanPath(path)] = &failure{status: status, remaining: n}
}

// SetJSON replaces the body served at path.
func (s *Server) SetJSON(path string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[cleanPath(path)] = body
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := cleanPath(r.URL.Path)

	s.mu.Lock()
	s.hits[path]++
	status, forced := s.forced[path]
	if f, ok := s.failures[path]; ok && f.remaining > 0 {
		f.remaining--
		status, forced = f.status, true
	}
	body, found := s.routes[path]
	s.mu.Unlock()

	switch {
	case forced:
		http.Error(w, http.StatusText(status), status)
	case strings.HasPrefix(path, "/sprites/"):
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(s.sprite)
	case !found:
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func cleanPath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// makeSprite encodes a small opaque PNG.
func makeSprite() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: 250, G: 210, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
