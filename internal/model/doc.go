// Package model defines the core data structures used throughout pokedex.
//
// This package contains the following main types:
//   - Pokemon: The subset of the PokeAPI pokemon resource that pokedex displays
//   - Species and EvolutionChain: The resources needed to build an evolution line
//   - Type and NamedResourceList: The resources behind "browse by type"
//   - Entry: The assembled result of a lookup, ready for a report writer
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The API client, the lookup service, the report writers and the
// terminal UI all use these types, so centralizing them prevents import cycles.
//
// The payload types only declare the fields pokedex reads. Unknown JSON fields
// are ignored by encoding/json, which keeps the types stable when PokeAPI adds
// new data.
package model
