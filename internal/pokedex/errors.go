package pokedex

import "errors"

var (
	// ErrEmptyName is returned when a lookup is requested without a name.
	ErrEmptyName = errors.New("enter a Pokémon name")

	// ErrPokemonNotFound means the /pokemon request failed.
	ErrPokemonNotFound = errors.New("pokemon not found")

	// ErrSpeciesNotFound means the /pokemon-species request failed.
	ErrSpeciesNotFound = errors.New("species not found")

	// ErrEvolutionUnavailable means the evolution chain request failed.
	ErrEvolutionUnavailable = errors.New("evolution chain unavailable")

	// ErrTypesUnavailable means the type list request failed.
	ErrTypesUnavailable = errors.New("types unavailable")

	// ErrTypeUnavailable means a single type request failed.
	ErrTypeUnavailable = errors.New("type unavailable")
)

// Error is a failed operation with a user-facing message.
// errors.Is matches both the Kind sentinel and the underlying cause.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Name is the Pokémon or type name as the user typed it.
	Name string

	// Err is the cause, typically a *pokeapi.StatusError.
	Err error
}

// Error returns the message shown to the user.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrPokemonNotFound:
		return "Could not find Pokémon: " + e.Name
	case ErrSpeciesNotFound:
		return "Could not find species data for: " + e.Name
	case ErrEvolutionUnavailable:
		return "Could not retrieve evolution chain."
	case ErrTypesUnavailable:
		return "Failed to fetch types."
	case ErrTypeUnavailable:
		return "Could not fetch Pokémon of that type."
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind error, name string, cause error) *Error {
	return &Error{Kind: kind, Name: name, Err: cause}
}
