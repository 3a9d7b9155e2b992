// Package catalog imports BoardGameGeek games into the local collection.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ryanm101/tabletop/internal/bgg"
	"github.com/ryanm101/tabletop/internal/db"
	"github.com/ryanm101/tabletop/internal/logging"
)

// ErrInvalidID is returned for BGG ids that are not positive integers.
var ErrInvalidID = errors.New("invalid bgg id")

// ValidID reports whether id looks like a BGG thing id.
func ValidID(id string) bool {
	n, err := strconv.ParseUint(id, 10, 64)
	return err == nil && n > 0
}

// Service turns BGG lookups into stored games.
type Service struct {
	db         *db.DB
	provider   bgg.Provider
	characters CharacterSource
}

// NewService creates a catalog service. A nil source uses StaticCharacterSource.
func NewService(d *db.DB, p bgg.Provider, cs CharacterSource) *Service {
	if cs == nil {
		cs = StaticCharacterSource{}
	}
	return &Service{db: d, provider: p, characters: cs}
}

// Preview fetches and converts a game without storing it.
func (s *Service) Preview(ctx context.Context, bggID string) (bgg.GameRecord, error) {
	if !ValidID(bggID) {
		return bgg.GameRecord{}, fmt.Errorf("%w: %q", ErrInvalidID, bggID)
	}

	details, err := s.provider.GetGameDetails(ctx, bggID)
	if err != nil {
		return bgg.GameRecord{}, err
	}

	rec := bgg.ConvertToGameFormat(details)
	s.applyCharacters(ctx, &rec)
	return rec, nil
}

// ImportGame stores the game with the given BGG id. If it was imported before,
// the existing row is returned and created is false.
func (s *Service) ImportGame(ctx context.Context, bggID string) (game *db.Game, created bool, err error) {
	if !ValidID(bggID) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidID, bggID)
	}

	existing, err := s.db.GetGameByBGGID(ctx, bggID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, err
	}

	rec, err := s.Preview(ctx, bggID)
	if err != nil {
		return nil, false, err
	}

	game, err = s.db.CreateGame(ctx, toGame(rec))
	if err != nil {
		return nil, false, err
	}

	logging.Info("imported game from bgg", "bgg_id", bggID, "game_id", game.ID, "name", game.Name)
	return game, true, nil
}

func (s *Service) applyCharacters(ctx context.Context, rec *bgg.GameRecord) {
	chars, ok := s.characters.Characters(ctx, rec.BGGID)
	if !ok || len(chars) == 0 {
		return
	}

	names := make([]string, 0, len(chars))
	for _, c := range chars {
		names = append(names, c.Name)
	}
	data, err := json.Marshal(names)
	if err != nil {
		logging.Warn("failed to encode characters", "bgg_id", rec.BGGID, "error", err)
		return
	}

	list := string(data)
	rec.HasCharacters = true
	rec.Characters = &list
}

// toGame maps a converted record onto a row. BGG reports unknown player counts
// as zero, which are dropped along with inverted ranges.
func toGame(rec bgg.GameRecord) db.Game {
	minPlayers := positive(rec.MinPlayers)
	maxPlayers := positive(rec.MaxPlayers)
	if minPlayers != nil && maxPlayers != nil && *maxPlayers < *minPlayers {
		minPlayers, maxPlayers = nil, nil
	}

	bggID := rec.BGGID
	return db.Game{
		BGGID:               &bggID,
		Name:                rec.Name,
		Description:         rec.Description,
		Image:               rec.Image,
		HasCharacters:       rec.HasCharacters,
		Characters:          rec.Characters,
		MinPlayers:          minPlayers,
		MaxPlayers:          maxPlayers,
		SupportsCooperative: rec.SupportsCooperative,
		SupportsCompetitive: rec.SupportsCompetitive,
		SupportsCampaign:    rec.SupportsCampaign,
		DefaultMode:         rec.DefaultMode,
	}
}

func positive(p *int) *int {
	if p == nil || *p < 1 {
		return nil
	}
	v := *p
	return &v
}
