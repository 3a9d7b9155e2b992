package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique", errors.New("constraint failed: UNIQUE constraint failed: players.player_name (2067)"), ErrDuplicate},
		{"foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ErrInvalidArg},
		{"no table", errors.New("SQL logic error: no such table: games (1)"), ErrDatabase},
		{"other", errors.New("disk I/O error"), ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapDBError(tt.err, "create player")
			assert.ErrorIs(t, err, tt.want)

			var dbErr *Error
			assert.ErrorAs(t, err, &dbErr)
			assert.Equal(t, "create player", dbErr.Op)
		})
	}
}

func TestWrapDBError_Nil(t *testing.T) {
	assert.NoError(t, WrapDBError(nil, "op"))
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("game", 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "find game '42': not found", err.Error())
}

func TestError_NoEntity(t *testing.T) {
	err := &Error{Op: "list games", Err: ErrDatabase}
	assert.Equal(t, "list games: database error", err.Error())
}
