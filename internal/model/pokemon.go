package model

import (
	"fmt"
	"strings"
)

// NamedResource is the {name, url} pair PokeAPI uses to reference other resources.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NamedResourceList is a paginated list of named resources,
// as returned by list endpoints such as /type/.
type NamedResourceList struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []NamedResource `json:"results"`
}

// Names returns the resource names in API order.
func (l *NamedResourceList) Names() []string {
	names := make([]string, 0, len(l.Results))
	for _, r := range l.Results {
		names = append(names, r.Name)
	}
	return names
}

// PokemonAbility is one entry of a Pokémon's ability list.
type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// PokemonType is one entry of a Pokémon's type list.
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonStat is a base stat such as hp or speed.
type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Sprites holds sprite image URLs. PokeAPI returns null for missing sprites,
// so the fields are pointers.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

// Pokemon is the subset of the /pokemon/{name} resource that pokedex uses.
type Pokemon struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	BaseExperience int              `json:"base_experience"`
	Abilities      []PokemonAbility `json:"abilities"`
	Types          []PokemonType    `json:"types"`
	Stats          []PokemonStat    `json:"stats"`
	Sprites        Sprites          `json:"sprites"`
}

// AbilityNames returns ability names in API order.
func (p *Pokemon) AbilityNames() []string {
	names := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		names = append(names, a.Ability.Name)
	}
	return names
}

// TypeNames returns type names ordered by slot as returned by the API.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// SpriteURL returns the default front sprite URL, or "" when PokeAPI has none.
func (p *Pokemon) SpriteURL() string {
	if p.Sprites.FrontDefault == nil {
		return ""
	}
	return *p.Sprites.FrontDefault
}

// BaseStats returns base stats in API order.
func (p *Pokemon) BaseStats() []Stat {
	stats := make([]Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return stats
}

// Summary returns the attributes shown for a looked up Pokémon.
func (p *Pokemon) Summary() Summary {
	return Summary{
		Name:      Capitalize(p.Name),
		Height:    p.Height,
		Weight:    p.Weight,
		Abilities: p.AbilityNames(),
	}
}

// Stat is a named base stat value.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary is the basic attribute block of a lookup result.
// Height is in decimetres and Weight in hectograms, exactly as PokeAPI reports.
type Summary struct {
	Name      string   `json:"name"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Abilities []string `json:"abilities"`
}

// String renders the summary as four "Key: value" lines.
func (s Summary) String() string {
	return fmt.Sprintf("Name: %s\nHeight: %d\nWeight: %d\nAbilities: %s",
		s.Name, s.Height, s.Weight, strings.Join(s.Abilities, ", "))
}
