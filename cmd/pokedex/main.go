// Package main provides the entry point for the pokedex CLI.
//
// pokedex looks up Pokémon on PokeAPI, shows their evolution line and
// browses Pokémon by type, either from the command line or in an
// interactive terminal UI.
//
// Usage:
//
//	pokedex search pikachu
//	pokedex types electric
//	pokedex browse
//
// See --help for all available options.
package main

// main is the entry point for pokedex.
func main() {
	Execute()
}
