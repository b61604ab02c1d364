package model

import "time"

// Image status markers shown in place of a sprite.
const (
	NoImage    = "(No image)"
	ImageError = "(Image error)"
)

// EvolutionStage is one Pokémon of an evolution line.
type EvolutionStage struct {
	// Name is the lower-case species name.
	Name string `json:"name"`

	// SpriteURL is empty when PokeAPI has no sprite for this stage.
	SpriteURL string `json:"sprite_url,omitempty"`

	// Sprite holds the downloaded PNG bytes when sprites were fetched.
	Sprite []byte `json:"-"`

	// Current marks the Pokémon that was looked up.
	Current bool `json:"current"`

	// ImageError is set when the sprite exists but could not be downloaded.
	ImageError string `json:"image_error,omitempty"`
}

// DisplayName returns the capitalized stage name.
func (s EvolutionStage) DisplayName() string {
	return Capitalize(s.Name)
}

// ImageStatus returns the marker shown instead of a sprite, or "" when
// the sprite is available.
func (s EvolutionStage) ImageStatus() string {
	switch {
	case s.SpriteURL == "":
		return NoImage
	case s.ImageError != "":
		return ImageError
	default:
		return ""
	}
}

// Entry is the assembled result of looking up one Pokémon.
type Entry struct {
	ID             int       `json:"id"`
	Summary        Summary   `json:"summary"`
	Types          []string  `json:"types"`
	Stats          []Stat    `json:"stats"`
	BaseExperience int       `json:"base_experience"`
	SpriteURL      string    `json:"sprite_url,omitempty"`
	LookedUpAt     time.Time `json:"looked_up_at"`

	// Evolution is the flattened evolution line. It is empty when the
	// evolution chain could not be retrieved; EvolutionError then says why.
	Evolution      []EvolutionStage `json:"evolution"`
	EvolutionError string           `json:"evolution_error,omitempty"`
}

// NewEntry builds an Entry from Pokémon data without evolution information.
func NewEntry(p *Pokemon) *Entry {
	return &Entry{
		ID:             p.ID,
		Summary:        p.Summary(),
		Types:          p.TypeNames(),
		Stats:          p.BaseStats(),
		BaseExperience: p.BaseExperience,
		SpriteURL:      p.SpriteURL(),
		LookedUpAt:     time.Now(),
	}
}

// EvolutionNames returns the stage names in order.
func (e *Entry) EvolutionNames() []string {
	names := make([]string, len(e.Evolution))
	for i, s := range e.Evolution {
		names[i] = s.Name
	}
	return names
}

// CurrentIndex returns the index of the looked up stage, or -1.
func (e *Entry) CurrentIndex() int {
	for i, s := range e.Evolution {
		if s.Current {
			return i
		}
	}
	return -1
}

// TotalBaseStats sums the base stats.
func (e *Entry) TotalBaseStats() int {
	total := 0
	for _, s := range e.Stats {
		total += s.Value
	}
	return total
}
