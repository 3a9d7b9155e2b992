package bgg

import "strings"

// Game modes understood by the games table.
const (
	ModeCompetitive = "competitive"
	ModeCooperative = "cooperative"
	ModeCampaign    = "campaign"
)

var (
	characterDescriptionHints = []string{"character", "hero", "player character"}
	characterMechanicHints    = []string{"role playing", "character", "hero"}
	cooperativeMechanicHints  = []string{"cooperative", "co-op", "team"}
	campaignMechanicHints     = []string{"campaign", "legacy", "story"}
)

// ConvertToGameFormat maps BGG details onto a game creation record. Play modes
// and character support are guessed from the description and mechanics.
func ConvertToGameFormat(d *GameDetails) GameRecord {
	if d == nil {
		d = &GameDetails{}
	}

	description := ""
	if d.Description != nil {
		description = strings.ToLower(*d.Description)
	}
	mechanics := make([]string, 0, len(d.Mechanics))
	for _, m := range d.Mechanics {
		mechanics = append(mechanics, strings.ToLower(m))
	}

	hasCharacters := containsAny(description, characterDescriptionHints) ||
		anyContains(mechanics, characterMechanicHints)
	cooperative := anyContains(mechanics, cooperativeMechanicHints)
	campaign := anyContains(mechanics, campaignMechanicHints)

	mode := ModeCompetitive
	switch {
	case campaign:
		mode = ModeCampaign
	case cooperative:
		mode = ModeCooperative
	}

	return GameRecord{
		BGGID:               d.ID,
		Name:                d.Name,
		Description:         cloneString(d.Description),
		Image:               cloneString(d.Image),
		HasCharacters:       hasCharacters,
		MinPlayers:          playerCount(d.MinPlayers),
		MaxPlayers:          playerCount(d.MaxPlayers),
		SupportsCooperative: cooperative,
		SupportsCompetitive: true,
		SupportsCampaign:    campaign,
		DefaultMode:         mode,
	}
}

// playerCount copies a count, treating BGG's 0 for unknown as absent.
func playerCount(p *int) *int {
	if p == nil || *p <= 0 {
		return nil
	}
	return cloneInt(p)
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

func anyContains(values, hints []string) bool {
	for _, v := range values {
		if containsAny(v, hints) {
			return true
		}
	}
	return false
}
