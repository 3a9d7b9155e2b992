// Package bgg is a client for the BoardGameGeek XML API v2 with a
// time-boxed detail cache and a single outbound rate limit.
package bgg

import (
	"context"
	"time"
)

// SearchResult is one hit from a BGG name search.
type SearchResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	YearPublished *int   `json:"yearPublished,omitempty"`
}

// GameDetails holds the metadata of a single BGG "thing".
// Optional values are nil when BGG omits them or sends something unparsable.
type GameDetails struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	YearPublished  *int     `json:"yearPublished,omitempty"`
	MinPlayers     *int     `json:"minPlayers,omitempty"`
	MaxPlayers     *int     `json:"maxPlayers,omitempty"`
	PlayingTime    *int     `json:"playingTime,omitempty"`
	MinPlayingTime *int     `json:"minPlayingTime,omitempty"`
	MaxPlayingTime *int     `json:"maxPlayingTime,omitempty"`
	Age            *int     `json:"age,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Image          *string  `json:"image,omitempty"`
	Thumbnail      *string  `json:"thumbnail,omitempty"`
	Complexity     *float64 `json:"complexity,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	Categories     []string `json:"categories"`
	Mechanics      []string `json:"mechanics"`
	Families       []string `json:"families"`
}

// Clone returns a deep copy so cached values are never shared with callers.
func (d *GameDetails) Clone() *GameDetails {
	if d == nil {
		return nil
	}
	c := *d
	c.YearPublished = cloneInt(d.YearPublished)
	c.MinPlayers = cloneInt(d.MinPlayers)
	c.MaxPlayers = cloneInt(d.MaxPlayers)
	c.PlayingTime = cloneInt(d.PlayingTime)
	c.MinPlayingTime = cloneInt(d.MinPlayingTime)
	c.MaxPlayingTime = cloneInt(d.MaxPlayingTime)
	c.Age = cloneInt(d.Age)
	c.Description = cloneString(d.Description)
	c.Image = cloneString(d.Image)
	c.Thumbnail = cloneString(d.Thumbnail)
	c.Complexity = cloneFloat(d.Complexity)
	c.Rating = cloneFloat(d.Rating)
	c.Categories = append([]string{}, d.Categories...)
	c.Mechanics = append([]string{}, d.Mechanics...)
	c.Families = append([]string{}, d.Families...)
	return &c
}

// CacheEntry is a cached detail lookup.
type CacheEntry struct {
	Data      GameDetails
	CachedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the entry can still be served at now.
func (e CacheEntry) Valid(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Provider is the part of the client consumed by the rest of the application.
type Provider interface {
	SearchGames(ctx context.Context, query string) ([]SearchResult, error)
	GetGameDetails(ctx context.Context, id string) (*GameDetails, error)
}

// GameRecord is a BGG game converted to the shape used to create a game.
type GameRecord struct {
	BGGID               string  `json:"game_id_bgg"`
	Name                string  `json:"game_name"`
	Description         *string `json:"game_description"`
	Image               *string `json:"game_image"`
	HasCharacters       bool    `json:"has_characters"`
	Characters          *string `json:"characters"`
	MinPlayers          *int    `json:"min_players"`
	MaxPlayers          *int    `json:"max_players"`
	SupportsCooperative bool    `json:"supports_cooperative"`
	SupportsCompetitive bool    `json:"supports_competitive"`
	SupportsCampaign    bool    `json:"supports_campaign"`
	DefaultMode         string  `json:"default_mode"`
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
