package model

import (
	"encoding/json"
	"slices"
	"testing"
)

// charmanderChain is a trimmed /evolution-chain/2 response.
const charmanderChain = `{
  "id": 2,
  "chain": {
    "species": {"name": "charmander", "url": "https://pokeapi.co/api/v2/pokemon-species/4/"},
    "evolves_to": [{
      "species": {"name": "charmeleon", "url": "https://pokeapi.co/api/v2/pokemon-species/5/"},
      "evolves_to": [{
        "species": {"name": "charizard", "url": "https://pokeapi.co/api/v2/pokemon-species/6/"},
        "evolves_to": []
      }]
    }]
  }
}`

// eeveeChain branches at the root.
const eeveeChain = `{
  "id": 67,
  "chain": {
    "species": {"name": "eevee", "url": ""},
    "evolves_to": [
      {"species": {"name": "vaporeon", "url": ""}, "evolves_to": []},
      {"species": {"name": "jolteon", "url": ""}, "evolves_to": []},
      {"species": {"name": "flareon", "url": ""}, "evolves_to": []}
    ]
  }
}`

func decodeChain(t *testing.T, raw string) EvolutionChain {
	t.Helper()

	var chain EvolutionChain
	if err := json.Unmarshal([]byte(raw), &chain); err != nil {
		t.Fatalf("failed to decode chain: %v", err)
	}
	return chain
}

func TestFlattenChain(t *testing.T) {
	t.Parallel()

	t.Run("linear chain is flattened in order", func(t *testing.T) {
		t.Parallel()

		chain := decodeChain(t, charmanderChain)
		got := FlattenChain(chain.Chain)
		want := []string{"charmander", "charmeleon", "charizard"}
		if !slices.Equal(got, want) {
			t.Errorf("FlattenChain() = %v, want %v", got, want)
		}
	})

	t.Run("branching chain follows the first branch only", func(t *testing.T) {
		t.Parallel()

		chain := decodeChain(t, eeveeChain)
		got := FlattenChain(chain.Chain)
		want := []string{"eevee", "vaporeon"}
		if !slices.Equal(got, want) {
			t.Errorf("FlattenChain() = %v, want %v", got, want)
		}
	})

	t.Run("single stage chain", func(t *testing.T) {
		t.Parallel()

		got := FlattenChain(ChainLink{Species: NamedResource{Name: "tauros"}})
		if !slices.Equal(got, []string{"tauros"}) {
			t.Errorf("FlattenChain() = %v, want [tauros]", got)
		}
	})
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	chain := []string{"charmander", "charmeleon", "charizard"}

	tests := []struct {
		name     string
		lookup   string
		wantPrev string
		wantNext string
		wantOK   bool
	}{
		{"first stage has only next", "charmander", "", "charmeleon", true},
		{"middle stage has both", "charmeleon", "charmander", "charizard", true},
		{"last stage has only prev", "charizard", "charmeleon", "", true},
		{"match is case-insensitive", "CharMeleon", "charmander", "charizard", true},
		{"unknown name", "pikachu", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prev, next, ok := Neighbors(chain, tt.lookup)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if prev != tt.wantPrev {
				t.Errorf("prev = %q, want %q", prev, tt.wantPrev)
			}
			if next != tt.wantNext {
				t.Errorf("next = %q, want %q", next, tt.wantNext)
			}
		})
	}
}

func TestNewEvolutionLine(t *testing.T) {
	t.Parallel()

	chain := []string{"pichu", "pikachu", "raichu"}

	line, ok := NewEvolutionLine(chain, " Pikachu")
	if !ok {
		t.Fatal("expected pikachu to be in the line")
	}
	if line.Name != "pikachu" || line.Previous != "pichu" || line.Next != "raichu" {
		t.Errorf("unexpected line: %+v", line)
	}

	line, ok = NewEvolutionLine([]string{"eevee", "vaporeon"}, "jolteon")
	if ok {
		t.Error("expected jolteon to be off the flattened line")
	}
	if line.Previous != "" || line.Next != "" {
		t.Errorf("expected no neighbors, got %+v", line)
	}
}
