package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Game modes a game can default to.
const (
	ModeCompetitive = "competitive"
	ModeCooperative = "cooperative"
	ModeCampaign    = "campaign"
)

// Game is a board game in the collection.
type Game struct {
	ID                  int64   `json:"game_id"`
	BGGID               *string `json:"game_id_bgg"`
	Name                string  `json:"game_name" validate:"required,max=200"`
	Description         *string `json:"game_description"`
	Image               *string `json:"game_image"`
	HasCharacters       bool    `json:"has_characters"`
	Characters          *string `json:"characters"`
	MinPlayers          *int    `json:"min_players" validate:"omitempty,gte=1"`
	MaxPlayers          *int    `json:"max_players" validate:"omitempty,gte=1"`
	SupportsCooperative bool    `json:"supports_cooperative"`
	SupportsCompetitive bool    `json:"supports_competitive"`
	SupportsCampaign    bool    `json:"supports_campaign"`
	DefaultMode         string  `json:"default_mode" validate:"required,oneof=competitive cooperative campaign"`
	CreatedAt           string  `json:"created_at"`
}

const gameColumns = `game_id, game_id_bgg, game_name, game_description, game_image,
	has_characters, characters, min_players, max_players,
	supports_cooperative, supports_competitive, supports_campaign, default_mode, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(s scanner) (*Game, error) {
	var g Game
	err := s.Scan(&g.ID, &g.BGGID, &g.Name, &g.Description, &g.Image,
		&g.HasCharacters, &g.Characters, &g.MinPlayers, &g.MaxPlayers,
		&g.SupportsCooperative, &g.SupportsCompetitive, &g.SupportsCampaign,
		&g.DefaultMode, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGames returns every game ordered by id.
func (db *DB) ListGames(ctx context.Context) ([]Game, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY game_id`)
	if err != nil {
		return nil, WrapDBError(err, "list games")
	}
	defer func() { _ = rows.Close() }()

	games := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, WrapDBError(err, "list games")
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapDBError(err, "list games")
	}
	return games, nil
}

// GetGame returns one game by id.
func (db *DB) GetGame(ctx context.Context, id int64) (*Game, error) {
	g, err := scanGame(db.conn.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE game_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError("game", id)
		}
		return nil, WrapDBError(err, "get game")
	}
	return g, nil
}

// GetGameByBGGID returns the game imported from the given BoardGameGeek id.
func (db *DB) GetGameByBGGID(ctx context.Context, bggID string) (*Game, error) {
	g, err := scanGame(db.conn.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE game_id_bgg = ? ORDER BY game_id LIMIT 1`, bggID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &Error{Op: "find game", Entity: "bgg:" + bggID, Err: ErrNotFound}
		}
		return nil, WrapDBError(err, "get game")
	}
	return g, nil
}

// CreateGame inserts g and returns the stored row. An empty DefaultMode
// becomes competitive.
func (db *DB) CreateGame(ctx context.Context, g Game) (*Game, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.DefaultMode == "" {
		g.DefaultMode = ModeCompetitive
	}
	if err := validateInput("create game", g); err != nil {
		return nil, err
	}
	if g.MinPlayers != nil && g.MaxPlayers != nil && *g.MaxPlayers < *g.MinPlayers {
		return nil, &Error{Op: "create game", Entity: g.Name,
			Err: fmt.Errorf("%w: max_players must not be less than min_players", ErrInvalidArg)}
	}

	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO games (
			game_id_bgg, game_name, game_description, game_image, has_characters, characters,
			min_players, max_players, supports_cooperative, supports_competitive,
			supports_campaign, default_mode
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.BGGID, g.Name, g.Description, g.Image, g.HasCharacters, g.Characters,
		g.MinPlayers, g.MaxPlayers, g.SupportsCooperative, g.SupportsCompetitive,
		g.SupportsCampaign, g.DefaultMode)
	if err != nil {
		return nil, WrapDBError(err, "create game")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapDBError(err, "create game")
	}
	return db.GetGame(ctx, id)
}

// DeleteGame removes a game and its sessions.
func (db *DB) DeleteGame(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "game", `DELETE FROM games WHERE game_id = ?`, id)
}
