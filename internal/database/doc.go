// Package database provides SQLite-based storage for pokedex.
//
// The PokeDB lives in the XDG data directory and stores:
//   - Raw PokeAPI JSON responses keyed by (kind, key), so repeated runs
//     do not hit the API again until the response ages past the TTL
//   - Downloaded sprite images keyed by URL
//   - A history of lookups for the history command
//
// Design decision: We use SQLite (via modernc.org/sqlite) because it is a
// single file, needs no CGO, and WAL mode lets the interactive browser
// read while a batch search writes.
package database
