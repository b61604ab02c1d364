// Package pokeapi is a read-only client for the PokeAPI REST service.
//
// It covers the endpoints pokedex consumes: /pokemon, /pokemon-species,
// /evolution-chain and /type, plus plain downloads of sprite images.
//
// Every request goes through the same path:
//
//  1. The persistent store, if configured, is consulted first.
//  2. A token-bucket limiter (golang.org/x/time/rate) spaces out requests
//     so batch searches stay within PokeAPI's fair-use policy.
//  3. The request is retried on network errors, 429 and 5xx responses.
//  4. Successful bodies are written back to the store.
//
// Design decision: The client returns raw PokeAPI shapes from the model
// package and never caches decoded values in memory. In-memory caching is
// the pokedex service's concern; this package only knows about HTTP and
// the optional on-disk store.
package pokeapi
