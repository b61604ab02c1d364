// Package cache holds the in-memory lookup tables of a pokedex session.
//
// There are four tables, all keyed by the lower-cased name:
//
//   - Pokemon: decoded /pokemon data
//   - ImageURLs: the default sprite URL of a Pokémon
//   - TypeMembers: the sorted member list of a type
//   - Evolutions: the flattened evolution line, stored under every
//     species name in the line
//
// Entries never expire; a session is short and PokeAPI data is static.
package cache

import (
	"slices"
	"strings"
	"sync"

	"github.com/nao1215/pokedex/internal/model"
)

// Table is a concurrency-safe map keyed by case-insensitive names.
type Table[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewTable creates an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{entries: make(map[string]V)}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the value stored under name.
func (t *Table[V]) Get(name string) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key(name)]
	return v, ok
}

// Put stores v under name, replacing any previous value.
func (t *Table[V]) Put(name string, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key(name)] = v
}

// Delete removes name.
func (t *Table[V]) Delete(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key(name))
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Keys returns the stored names, sorted.
func (t *Table[V]) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clear removes every entry.
func (t *Table[V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.entries)
}

// Set bundles the four lookup tables.
type Set struct {
	Pokemon     *Table[*model.Pokemon]
	ImageURLs   *Table[string]
	TypeMembers *Table[[]string]
	Evolutions  *Table[[]string]
}

// NewSet creates a Set with empty tables.
func NewSet() *Set {
	return &Set{
		Pokemon:     NewTable[*model.Pokemon](),
		ImageURLs:   NewTable[string](),
		TypeMembers: NewTable[[]string](),
		Evolutions:  NewTable[[]string](),
	}
}

// PutEvolution stores chain under each of its member names, so a later
// lookup of any stage is served without fetching the chain again.
func (s *Set) PutEvolution(chain []string) {
	for _, name := range chain {
		s.Evolutions.Put(name, chain)
	}
}

// Stats are the entry counts of each table.
type Stats struct {
	Pokemon     int `json:"pokemon"`
	ImageURLs   int `json:"image_urls"`
	TypeMembers int `json:"type_members"`
	Evolutions  int `json:"evolutions"`
}

// Stats returns the current entry counts.
func (s *Set) Stats() Stats {
	return Stats{
		Pokemon:     s.Pokemon.Len(),
		ImageURLs:   s.ImageURLs.Len(),
		TypeMembers: s.TypeMembers.Len(),
		Evolutions:  s.Evolutions.Len(),
	}
}

// Clear empties every table.
func (s *Set) Clear() {
	s.Pokemon.Clear()
	s.ImageURLs.Clear()
	s.TypeMembers.Clear()
	s.Evolutions.Clear()
}
