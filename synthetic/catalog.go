package synthetic

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"chatdice/domain"
	"chatdice/errors"
)

//go:embed prompts/*
var promptsFolder embed.FS

// personalityMeta binds a prompt file to its catalog entry. The list
// and weights are fixed at build time; prompts load once at startup.
var personalityMeta = []struct {
	id     string
	name   string
	file   string
	weight float64
}{
	{id: "comedian", name: "Comedian", file: "comedian.txt", weight: 1.0},
	{id: "gamer", name: "Gamer", file: "gamer.txt", weight: 1.2},
	{id: "friendly", name: "Friendly", file: "friendly.txt", weight: 1.0},
	{id: "music_lover", name: "Music Lover", file: "music_lover.txt", weight: 1.0},
	{id: "traveler", name: "Traveler", file: "traveler.txt", weight: 0.9},
	{id: "deep_thinker", name: "Deep Thinker", file: "deep_thinker.txt", weight: 0.8},
	{id: "movie_buff", name: "Movie Buff", file: "movie_buff.txt", weight: 1.0},
	{id: "adventurer", name: "Adventurer", file: "adventurer.txt", weight: 0.9},
}

// Catalog is the load-time-resolved set of personalities. Each prompt is
// the shared general instructions followed by the personality text.
type Catalog struct {
	personalities []domain.Personality
}

// LoadCatalog reads every prompt from the embedded filesystem. A missing
// personality file is a startup error, not a runtime one.
func LoadCatalog(log *slog.Logger) (*Catalog, error) {
	general, err := promptsFolder.ReadFile("prompts/general-instructions.txt")
	if err != nil {
		return nil, fmt.Errorf("loading general instructions: %w", err)
	}

	var personalities []domain.Personality
	for _, meta := range personalityMeta {
		raw, err := promptsFolder.ReadFile("prompts/" + meta.file)
		if err != nil {
			return nil, fmt.Errorf("loading personality %s: %w", meta.id, err)
		}
		prompt := strings.TrimSpace(string(general)) +
			"\n\n===== YOUR SPECIFIC PERSONALITY =====\n\n" +
			strings.TrimSpace(string(raw))
		personalities = append(personalities, domain.Personality{
			ID:     meta.id,
			Name:   meta.name,
			Weight: meta.weight,
			Prompt: prompt,
		})
	}
	if len(personalities) == 0 {
		return nil, errors.ErrEmptyCatalog
	}

	log.Info(fmt.Sprintf("%d personalities loaded", len(personalities)))
	return &Catalog{personalities: personalities}, nil
}

// Select draws one personality by weight.
func (c *Catalog) Select(rng *lockedRand) domain.Personality {
	return pickWeighted(rng, c.personalities, func(p domain.Personality) float64 {
		return p.Weight
	})
}

// All exposes the catalog, most useful in tests.
func (c *Catalog) All() []domain.Personality {
	return c.personalities
}
