package db

import (
	"context"
)

// PlayerStats summarises one player's sessions.
type PlayerStats struct {
	PlayerID     int64   `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	GamesPlayed  int     `json:"games_played"`
	Wins         int     `json:"wins"`
	WinRate      float64 `json:"win_rate"`
	TotalScore   int     `json:"total_score"`
	AverageScore float64 `json:"average_score"`
}

// GameStats summarises the sessions of one game.
type GameStats struct {
	GameID            int64   `json:"game_id"`
	GameName          string  `json:"game_name"`
	SessionsPlayed    int     `json:"sessions_played"`
	CompletedSessions int     `json:"completed_sessions"`
	TotalPlayers      int     `json:"total_players"`
	TotalScore        int     `json:"total_score"`
	AverageScore      float64 `json:"average_score"`
	HighScore         *int    `json:"high_score"`
}

// AllPlayerStats computes statistics for every player, ordered by player id.
func (db *DB) AllPlayerStats(ctx context.Context) ([]PlayerStats, error) {
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := db.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]PlayerStats, 0, len(players))
	for _, p := range players {
		stats = append(stats, computePlayerStats(p, sessions))
	}
	return stats, nil
}

// PlayerStatsByID computes statistics for one player.
func (db *DB) PlayerStatsByID(ctx context.Context, id int64) (*PlayerStats, error) {
	p, err := db.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := db.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	stats := computePlayerStats(*p, sessions)
	return &stats, nil
}

// AllGameStats computes statistics for every game, ordered by game id.
func (db *DB) AllGameStats(ctx context.Context) ([]GameStats, error) {
	games, err := db.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := db.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]GameStats, 0, len(games))
	for _, g := range games {
		stats = append(stats, computeGameStats(g, sessions))
	}
	return stats, nil
}

// GameStatsByID computes statistics for one game.
func (db *DB) GameStatsByID(ctx context.Context, id int64) (*GameStats, error) {
	g, err := db.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := db.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	stats := computeGameStats(*g, sessions)
	return &stats, nil
}

func computePlayerStats(p Player, sessions []Session) PlayerStats {
	st := PlayerStats{PlayerID: p.ID, PlayerName: p.Name}
	scored := 0
	for i := range sessions {
		s := &sessions[i]
		if !containsID(s.Players, p.ID) {
			continue
		}
		st.GamesPlayed++
		if s.WinnerID != nil && *s.WinnerID == p.ID {
			st.Wins++
		}
		if v, ok := s.Score(p.ID); ok {
			st.TotalScore += v
			scored++
		}
	}
	if st.GamesPlayed > 0 {
		st.WinRate = float64(st.Wins) / float64(st.GamesPlayed)
	}
	if scored > 0 {
		st.AverageScore = float64(st.TotalScore) / float64(scored)
	}
	return st
}

func computeGameStats(g Game, sessions []Session) GameStats {
	st := GameStats{GameID: g.ID, GameName: g.Name}
	scored := 0
	for i := range sessions {
		s := &sessions[i]
		if s.GameID != g.ID {
			continue
		}
		st.SessionsPlayed++
		if s.Completed {
			st.CompletedSessions++
		}
		st.TotalPlayers += len(s.Players)
		for _, v := range s.Scores {
			st.TotalScore += v
			scored++
			if st.HighScore == nil || v > *st.HighScore {
				high := v
				st.HighScore = &high
			}
		}
	}
	if scored > 0 {
		st.AverageScore = float64(st.TotalScore) / float64(scored)
	}
	return st
}
