package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Player is someone who takes part in sessions.
type Player struct {
	ID        int64  `json:"player_id"`
	Name      string `json:"player_name" validate:"required,max=100"`
	CreatedAt string `json:"created_at"`
}

const playerColumns = `player_id, player_name, created_at`

// ListPlayers returns every player ordered by id.
func (db *DB) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY player_id`)
	if err != nil {
		return nil, WrapDBError(err, "list players")
	}
	defer func() { _ = rows.Close() }()

	players := []Player{}
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, WrapDBError(err, "list players")
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapDBError(err, "list players")
	}
	return players, nil
}

// GetPlayer returns one player by id.
func (db *DB) GetPlayer(ctx context.Context, id int64) (*Player, error) {
	var p Player
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE player_id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError("player", id)
		}
		return nil, WrapDBError(err, "get player")
	}
	return &p, nil
}

// CreatePlayer inserts a player. Names are unique.
func (db *DB) CreatePlayer(ctx context.Context, name string) (*Player, error) {
	p := Player{Name: strings.TrimSpace(name)}
	if err := validateInput("create player", p); err != nil {
		return nil, err
	}

	res, err := db.conn.ExecContext(ctx, `INSERT INTO players (player_name) VALUES (?)`, p.Name)
	if err != nil {
		return nil, WrapDBError(err, "create player")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapDBError(err, "create player")
	}
	return db.GetPlayer(ctx, id)
}

// DeletePlayer removes a player. Sessions they won keep no winner.
func (db *DB) DeletePlayer(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "player", `DELETE FROM players WHERE player_id = ?`, id)
}

func (db *DB) deleteByID(ctx context.Context, itemType, stmt string, id int64) error {
	res, err := db.conn.ExecContext(ctx, stmt, id)
	if err != nil {
		return WrapDBError(err, "delete "+itemType)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return WrapDBError(err, "delete "+itemType)
	}
	if n == 0 {
		return NotFoundError(itemType, id)
	}
	return nil
}
