package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Session is one recorded play of a game.
type Session struct {
	ID            int64          `json:"sessions_id"`
	GameID        int64          `json:"sessions_game_id" validate:"required,gt=0"`
	IsCooperative bool           `json:"is_cooperative"`
	GameMode      string         `json:"game_mode" validate:"required,oneof=competitive cooperative campaign"`
	Players       []int64        `json:"sessions_players" validate:"required,min=1,dive,gt=0"`
	Scores        map[string]int `json:"sessions_scores"`
	WinnerID      *int64         `json:"sessions_winner"`
	WinCondition  *string        `json:"win_condition"`
	Date          *string        `json:"sessions_date"`
	Duration      *string        `json:"sessions_duration"`
	Completed     bool           `json:"sessions_completed"`
	CoopResult    *string        `json:"sessions_coop_result"`
	CreatedAt     string         `json:"created_at"`
}

// Score returns the recorded score of a player, if any.
func (s *Session) Score(playerID int64) (int, bool) {
	v, ok := s.Scores[fmt.Sprint(playerID)]
	return v, ok
}

const sessionColumns = `sessions_id, sessions_game_id, is_cooperative, game_mode,
	sessions_players, sessions_scores, sessions_winner, win_condition, sessions_date,
	sessions_duration, sessions_completed, sessions_coop_result, created_at`

func scanSession(s scanner) (*Session, error) {
	var (
		sess           Session
		players, score string
	)
	err := s.Scan(&sess.ID, &sess.GameID, &sess.IsCooperative, &sess.GameMode,
		&players, &score, &sess.WinnerID, &sess.WinCondition, &sess.Date,
		&sess.Duration, &sess.Completed, &sess.CoopResult, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(players), &sess.Players); err != nil {
		return nil, fmt.Errorf("decode sessions_players: %w", err)
	}
	if err := json.Unmarshal([]byte(score), &sess.Scores); err != nil {
		return nil, fmt.Errorf("decode sessions_scores: %w", err)
	}
	if sess.Scores == nil {
		sess.Scores = map[string]int{}
	}
	return &sess, nil
}

// ListSessions returns every session ordered by id.
func (db *DB) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+sessionColumns+` FROM game_sessions ORDER BY sessions_id`)
	if err != nil {
		return nil, WrapDBError(err, "list sessions")
	}
	defer func() { _ = rows.Close() }()

	sessions := []Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, WrapDBError(err, "list sessions")
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapDBError(err, "list sessions")
	}
	return sessions, nil
}

// GetSession returns one session by id.
func (db *DB) GetSession(ctx context.Context, id int64) (*Session, error) {
	s, err := scanSession(db.conn.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM game_sessions WHERE sessions_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError("session", id)
		}
		return nil, WrapDBError(err, "get session")
	}
	return s, nil
}

// CreateSession records a session. The game, the players and the winner must exist,
// and the winner must be one of the players.
func (db *DB) CreateSession(ctx context.Context, s Session) (*Session, error) {
	if s.GameMode == "" {
		s.GameMode = ModeCompetitive
	}
	if s.Scores == nil {
		s.Scores = map[string]int{}
	}
	if err := validateInput("create session", s); err != nil {
		return nil, err
	}
	if s.WinnerID != nil && !containsID(s.Players, *s.WinnerID) {
		return nil, &Error{Op: "create session",
			Err: fmt.Errorf("%w: sessions_winner must be one of sessions_players", ErrInvalidArg)}
	}

	players, err := json.Marshal(s.Players)
	if err != nil {
		return nil, &Error{Op: "create session", Err: fmt.Errorf("%w: %v", ErrInvalidArg, err)}
	}
	scores, err := json.Marshal(s.Scores)
	if err != nil {
		return nil, &Error{Op: "create session", Err: fmt.Errorf("%w: %v", ErrInvalidArg, err)}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, WrapDBError(err, "create session")
	}
	defer func() { _ = tx.Rollback() }()

	// Player ids live in a JSON column, so they are checked by hand.
	for _, id := range s.Players {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM players WHERE player_id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &Error{Op: "create session", Entity: fmt.Sprint(id),
				Err: fmt.Errorf("%w: unknown player", ErrInvalidArg)}
		}
		if err != nil {
			return nil, WrapDBError(err, "create session")
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO game_sessions (
			sessions_game_id, is_cooperative, game_mode, sessions_players, sessions_scores,
			sessions_winner, win_condition, sessions_date, sessions_duration,
			sessions_completed, sessions_coop_result
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.GameID, s.IsCooperative, s.GameMode, string(players), string(scores),
		s.WinnerID, s.WinCondition, s.Date, s.Duration, s.Completed, s.CoopResult)
	if err != nil {
		return nil, WrapDBError(err, "create session")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, WrapDBError(err, "create session")
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapDBError(err, "create session")
	}

	return db.GetSession(ctx, id)
}

// DeleteSession removes a session.
func (db *DB) DeleteSession(ctx context.Context, id int64) error {
	return db.deleteByID(ctx, "session", `DELETE FROM game_sessions WHERE sessions_id = ?`, id)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
