// Package config provides configuration structures and utilities for pokedex.
// It defines the PokeAPI client settings, the persistent cache location,
// and display preferences such as the type listing limit.
package config
