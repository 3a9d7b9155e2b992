package catalog

import "context"

// Character is a playable character of a game.
type Character struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Abilities   []string `json:"abilities,omitempty"`
}

// CharacterSource looks up known characters by BGG id.
type CharacterSource interface {
	Characters(ctx context.Context, bggID string) ([]Character, bool)
}

// StaticCharacterSource serves a fixed table of games with known characters.
type StaticCharacterSource struct{}

type characterEntry struct {
	slug       string
	characters []Character
}

var knownCharacters = map[string]characterEntry{
	"478": {slug: "citadels", characters: []Character{
		{Name: "Assassin", Description: "Can eliminate another character for the round", Abilities: []string{"Murder another character"}},
		{Name: "Thief", Description: "Can steal all gold from another character", Abilities: []string{"Steal all gold from target"}},
	}},
	"188920": {slug: "this-war-of-mine"},
	"197831": {slug: "dark-souls"},
	"113924": {slug: "zombicide"},
	"15987":  {slug: "arkham-horror"},
	"83330": {slug: "mansions-of-madness", characters: []Character{
		{Name: "Jenny Barnes", Description: "The Dilettante", Abilities: []string{"Money", "Connections", "Investigation"}},
		{Name: "Harvey Walters", Description: "The Professor", Abilities: []string{"Research", "Book Learning", "Spells"}},
		{Name: "Michael McGlen", Description: "The Gangster", Abilities: []string{"Combat", "Intimidation", "Weapons"}},
		{Name: "Amanda Sharpe", Description: "The Student", Abilities: []string{"Observation", "Speed", "Learning"}},
	}},
}

// Characters returns the characters of a mapped game. A mapped game with no
// character list still reports true.
func (StaticCharacterSource) Characters(_ context.Context, bggID string) ([]Character, bool) {
	e, ok := knownCharacters[bggID]
	if !ok {
		return nil, false
	}
	return append([]Character{}, e.characters...), true
}
