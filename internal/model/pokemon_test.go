package model

import (
	"encoding/json"
	"slices"
	"testing"
)

// pikachuJSON is a trimmed /pokemon/pikachu response.
const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "height": 4,
  "weight": 60,
  "base_experience": 112,
  "abilities": [
    {"ability": {"name": "static", "url": ""}, "is_hidden": false, "slot": 1},
    {"ability": {"name": "lightning-rod", "url": ""}, "is_hidden": true, "slot": 3}
  ],
  "types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
  "stats": [
    {"base_stat": 35, "effort": 0, "stat": {"name": "hp", "url": ""}},
    {"base_stat": 90, "effort": 2, "stat": {"name": "speed", "url": ""}}
  ],
  "sprites": {"front_default": "https://example.com/25.png", "front_shiny": null}
}`

func TestPokemonDecode(t *testing.T) {
	t.Parallel()

	var p Pokemon
	if err := json.Unmarshal([]byte(pikachuJSON), &p); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		s := p.Summary()
		want := "Name: Pikachu\nHeight: 4\nWeight: 60\nAbilities: static, lightning-rod"
		if s.String() != want {
			t.Errorf("Summary().String() = %q, want %q", s.String(), want)
		}
	})

	t.Run("sprite url", func(t *testing.T) {
		t.Parallel()
		if p.SpriteURL() != "https://example.com/25.png" {
			t.Errorf("unexpected sprite url %q", p.SpriteURL())
		}
	})

	t.Run("types and stats", func(t *testing.T) {
		t.Parallel()
		if !slices.Equal(p.TypeNames(), []string{"electric"}) {
			t.Errorf("unexpected types %v", p.TypeNames())
		}
		if len(p.BaseStats()) != 2 {
			t.Errorf("expected 2 stats, got %d", len(p.BaseStats()))
		}
	})
}

func TestPokemonSpriteURLNull(t *testing.T) {
	t.Parallel()

	var p Pokemon
	if err := json.Unmarshal([]byte(`{"name":"missingno","sprites":{"front_default":null}}`), &p); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if p.SpriteURL() != "" {
		t.Errorf("expected empty sprite url, got %q", p.SpriteURL())
	}
}

func TestEntry(t *testing.T) {
	t.Parallel()

	var p Pokemon
	if err := json.Unmarshal([]byte(pikachuJSON), &p); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	entry := NewEntry(&p)
	entry.Evolution = []EvolutionStage{
		{Name: "pichu", SpriteURL: "https://example.com/172.png"},
		{Name: "pikachu", SpriteURL: "https://example.com/25.png", Current: true},
		{Name: "raichu", SpriteURL: "https://example.com/26.png", ImageError: "timeout"},
	}

	if entry.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", entry.CurrentIndex())
	}
	if !slices.Equal(entry.EvolutionNames(), []string{"pichu", "pikachu", "raichu"}) {
		t.Errorf("unexpected evolution names %v", entry.EvolutionNames())
	}
	if entry.TotalBaseStats() != 125 {
		t.Errorf("TotalBaseStats() = %d, want 125", entry.TotalBaseStats())
	}
	if got := entry.Evolution[2].ImageStatus(); got != ImageError {
		t.Errorf("ImageStatus() = %q, want %q", got, ImageError)
	}
	if got := (EvolutionStage{Name: "x"}).ImageStatus(); got != NoImage {
		t.Errorf("ImageStatus() = %q, want %q", got, NoImage)
	}
}
