package pokeapitest

import (
	"fmt"
	"net/http"
)

type pokemonFixture struct {
	id        int
	name      string
	height    int
	weight    int
	baseExp   int
	abilities []string
	types     []string
	stats     [6]int
	noSprite  bool
}

var statNames = [6]string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

var pokemonFixtures = []pokemonFixture{
	{172, "pichu", 3, 20, 41, []string{"static", "lightning-rod"}, []string{"electric"}, [6]int{20, 40, 15, 35, 35, 60}, true},
	{25, "pikachu", 4, 60, 112, []string{"static", "lightning-rod"}, []string{"electric"}, [6]int{35, 55, 40, 50, 50, 90}, false},
	{26, "raichu", 8, 300, 243, []string{"static", "lightning-rod"}, []string{"electric"}, [6]int{60, 90, 55, 90, 80, 110}, false},
	{133, "eevee", 3, 65, 65, []string{"run-away", "adaptability", "anticipation"}, []string{"normal"}, [6]int{55, 55, 50, 45, 65, 55}, false},
	{134, "vaporeon", 10, 290, 184, []string{"water-absorb", "hydration"}, []string{"water"}, [6]int{130, 65, 60, 110, 95, 65}, false},
	{135, "jolteon", 8, 245, 184, []string{"volt-absorb", "quick-feet"}, []string{"electric"}, [6]int{65, 65, 60, 110, 95, 130}, false},
	{132, "ditto", 3, 40, 101, []string{"limber", "imposter"}, []string{"normal"}, [6]int{48, 48, 48, 48, 48, 48}, false},
}

// chainOf maps a species to its evolution chain ID.
var chainOf = map[string]int{
	"pichu": 10, "pikachu": 10, "raichu": 10,
	"eevee": 67, "vaporeon": 67, "jolteon": 67,
	"ditto": 999,
}

var evolvesFrom = map[string]string{
	"pikachu": "pichu", "raichu": "pikachu",
	"vaporeon": "eevee", "jolteon": "eevee",
}

func (s *Server) ref(resource, name string) map[string]any {
	return map[string]any{"name": name, "url": fmt.Sprintf("%s/%s/%s/", s.URL, resource, name)}
}

func (s *Server) loadFixtures() {
	for _, p := range pokemonFixtures {
		s.SetJSON("/pokemon/"+p.name, s.pokemonJSON(p))

		species := map[string]any{
			"id":                   p.id,
			"name":                 p.name,
			"evolution_chain":      map[string]any{"url": fmt.Sprintf("%s/evolution-chain/%d/", s.URL, chainOf[p.name])},
			"evolves_from_species": nil,
		}
		if from, ok := evolvesFrom[p.name]; ok {
			species["evolves_from_species"] = s.ref("pokemon-species", from)
		}
		s.SetJSON("/pokemon-species/"+p.name, species)
	}

	s.SetJSON("/evolution-chain/10", map[string]any{
		"id":    10,
		"chain": s.link("pichu", s.link("pikachu", s.link("raichu"))),
	})
	s.SetJSON("/evolution-chain/67", map[string]any{
		"id":    67,
		"chain": s.link("eevee", s.link("vaporeon"), s.link("jolteon")),
	})

	typeNames := []string{"normal", "fire", "water", "electric", "psychic", "unknown", "shadow"}
	results := make([]map[string]any, 0, len(typeNames))
	for _, t := range typeNames {
		results = append(results, s.ref("type", t))
	}
	s.SetJSON("/type", map[string]any{"count": len(typeNames), "next": nil, "results": results})

	members := map[string][]string{
		"electric": {"pikachu", "raichu", "pichu", "pikachu", "jolteon"},
		"water":    {"vaporeon"},
		"fire":     {},
		"psychic":  {},
	}
	normal := []string{"eevee"}
	for i := NormalMembers - 1; i >= 1; i-- {
		normal = append(normal, fmt.Sprintf("normal-%03d", i))
	}
	members["normal"] = normal

	for i, t := range typeNames[:5] {
		entries := make([]map[string]any, 0, len(members[t]))
		for _, m := range members[t] {
			entries = append(entries, map[string]any{"slot": 1, "pokemon": s.ref("pokemon", m)})
		}
		s.SetJSON("/type/"+t, map[string]any{"id": i + 1, "name": t, "pokemon": entries})
	}

	s.SetStatus("/sprites/26.png", http.StatusInternalServerError)
}

func (s *Server) pokemonJSON(p pokemonFixture) map[string]any {
	abilities := make([]map[string]any, 0, len(p.abilities))
	for i, a := range p.abilities {
		abilities = append(abilities, map[string]any{
			"ability":   s.ref("ability", a),
			"is_hidden": i == len(p.abilities)-1 && i > 0,
			"slot":      i + 1,
		})
	}
	types := make([]map[string]any, 0, len(p.types))
	for i, t := range p.types {
		types = append(types, map[string]any{"slot": i + 1, "type": s.ref("type", t)})
	}
	stats := make([]map[string]any, 0, len(statNames))
	for i, name := range statNames {
		stats = append(stats, map[string]any{"base_stat": p.stats[i], "effort": 0, "stat": s.ref("stat", name)})
	}

	var sprite any
	if !p.noSprite {
		sprite = s.SpriteURL(p.id)
	}

	return map[string]any{
		"id":              p.id,
		"name":            p.name,
		"height":          p.height,
		"weight":          p.weight,
		"base_experience": p.baseExp,
		"abilities":       abilities,
		"types":           types,
		"stats":           stats,
		"sprites":         map[string]any{"front_default": sprite, "front_shiny": nil},
	}
}

func (s *Server) link(name string, next ...map[string]any) map[string]any {
	return map[string]any{
		"species":    s.ref("pokemon-species", name),
		"evolves_to": append([]map[string]any{}, next...),
	}
}
