package model

import "strings"

// Species is the subset of the /pokemon-species/{name} resource that pokedex uses.
type Species struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	EvolutionChain     ChainReference `json:"evolution_chain"`
	EvolvesFromSpecies *NamedResource `json:"evolves_from_species"`
}

// ChainReference points at an evolution chain resource.
type ChainReference struct {
	URL string `json:"url"`
}

// EvolutionChain is the /evolution-chain/{id} resource.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of the evolution tree.
// EvolvesTo holds every species this one can evolve into.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

// FlattenChain returns the species names of a single evolution path,
// starting at the root. When a stage branches, only the first branch
// is followed: eevee yields [eevee vaporeon], not every eeveelution.
func FlattenChain(root ChainLink) []string {
	chain := []string{root.Species.Name}

	next := root.EvolvesTo
	for len(next) > 0 {
		node := next[0]
		chain = append(chain, node.Species.Name)
		next = node.EvolvesTo
	}

	return chain
}

// Neighbors returns the stages before and after name in a flattened chain.
// Matching is case-insensitive. ok is false when name is not in the chain;
// prev or next is empty at either end of the line.
func Neighbors(chain []string, name string) (prev, next string, ok bool) {
	key := NormalizeName(name)
	for i, n := range chain {
		if !strings.EqualFold(n, key) {
			continue
		}
		if i > 0 {
			prev = chain[i-1]
		}
		if i < len(chain)-1 {
			next = chain[i+1]
		}
		return prev, next, true
	}
	return "", "", false
}

// EvolutionLine is a flattened chain seen from one of its members.
type EvolutionLine struct {
	// Name is the member the line was requested for.
	Name     string   `json:"name"`
	Chain    []string `json:"chain"`
	Previous string   `json:"previous,omitempty"`
	Next     string   `json:"next,omitempty"`
}

// NewEvolutionLine resolves the neighbors of name in chain.
// ok is false when name is not a member of the chain, as happens for
// species on a branch that FlattenChain does not follow.
func NewEvolutionLine(chain []string, name string) (line *EvolutionLine, ok bool) {
	prev, next, ok := Neighbors(chain, name)
	return &EvolutionLine{
		Name:     NormalizeName(name),
		Chain:    chain,
		Previous: prev,
		Next:     next,
	}, ok
}
