package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return New(conn), mock
}

func TestListPlayers_Mock(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT player_id, player_name, created_at FROM players").
		WillReturnRows(sqlmock.NewRows([]string{"player_id", "player_name", "created_at"}).
			AddRow(1, "Alice", "2024-03-01 12:00:00").
			AddRow(2, "Bob", "2024-03-02 12:00:00"))

	players, err := db.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Bob", players[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGames_QueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM games").WillReturnError(errors.New("disk I/O error"))

	_, err := db.ListGames(context.Background())
	assert.ErrorIs(t, err, ErrDatabase)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSession_RowsAffected(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM game_sessions").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.DeleteSession(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSessions_CorruptJSON(t *testing.T) {
	db, mock := newMockDB(t)

	cols := []string{"sessions_id", "sessions_game_id", "is_cooperative", "game_mode",
		"sessions_players", "sessions_scores", "sessions_winner", "win_condition", "sessions_date",
		"sessions_duration", "sessions_completed", "sessions_coop_result", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM game_sessions").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 1, 0, "competitive", "not json", "{}", nil, nil, nil, nil, 0, nil, "2024-03-01"))

	_, err := db.ListSessions(context.Background())
	assert.ErrorIs(t, err, ErrDatabase)
}
