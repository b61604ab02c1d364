package model

import (
	"slices"
)

// DefaultExcludedTypes are the type names hidden from "browse by type".
// PokeAPI lists them as types but no regular Pokémon belongs to them.
var DefaultExcludedTypes = []string{"unknown", "shadow"}

// DefaultListingLimit is the number of Pokémon shown for a type.
const DefaultListingLimit = 50

// TypeMember is one entry of a type's Pokémon list.
type TypeMember struct {
	Slot    int           `json:"slot"`
	Pokemon NamedResource `json:"pokemon"`
}

// Type is the subset of the /type/{name} resource that pokedex uses.
type Type struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Pokemon []TypeMember `json:"pokemon"`
}

// MemberNames returns the names of the Pokémon of this type,
// sorted and with duplicates removed.
func (t *Type) MemberNames() []string {
	names := make([]string, 0, len(t.Pokemon))
	for _, m := range t.Pokemon {
		names = append(names, m.Pokemon.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// BrowsableTypes returns type names from list, in API order,
// leaving out the names in exclude.
func BrowsableTypes(list *NamedResourceList, exclude []string) []string {
	types := make([]string, 0, len(list.Results))
	for _, r := range list.Results {
		if slices.Contains(exclude, r.Name) {
			continue
		}
		types = append(types, r.Name)
	}
	return types
}

// TypeListing is what "browse by type" shows for one type.
type TypeListing struct {
	// Type is the lower-case type name.
	Type string `json:"type"`

	// Total is the number of distinct Pokémon of this type.
	Total int `json:"total"`

	// Members holds at most the listing limit of names, sorted.
	Members []string `json:"members"`
}

// NewTypeListing builds a listing from sorted member names.
// A non-positive limit keeps every member.
func NewTypeListing(typeName string, members []string, limit int) *TypeListing {
	shown := members
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	return &TypeListing{
		Type:    typeName,
		Total:   len(members),
		Members: slices.Clone(shown),
	}
}

// Truncated reports whether some members were left out of the listing.
func (l *TypeListing) Truncated() bool {
	return len(l.Members) < l.Total
}
