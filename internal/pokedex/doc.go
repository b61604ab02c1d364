// Package pokedex implements the Pokédex operations shared by the CLI and
// the interactive browser: looking up a Pokémon with its evolution line,
// listing types, and listing the Pokémon of a type.
//
// A Service sits between the user interface and the PokeAPI client and
// owns the session's four lookup caches (see package cache). Every
// operation checks its cache first, so repeating a search, or searching
// another member of an already seen evolution line, costs no request.
//
// Failures are reported as *Error values whose message is suitable for
// showing to the user as is, for example "Could not find Pokémon: pikachu".
package pokedex
