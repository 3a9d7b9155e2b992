package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateGame(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	g, err := db.CreateGame(ctx, Game{
		BGGID:               strPtr("174430"),
		Name:                "Gloomhaven",
		Description:         strPtr("dungeon crawl"),
		HasCharacters:       true,
		MinPlayers:          intPtr(1),
		MaxPlayers:          intPtr(4),
		SupportsCooperative: true,
		SupportsCompetitive: true,
		SupportsCampaign:    true,
		DefaultMode:         ModeCampaign,
	})
	require.NoError(t, err)

	assert.NotZero(t, g.ID)
	assert.Equal(t, "174430", *g.BGGID)
	assert.Equal(t, "Gloomhaven", g.Name)
	assert.Equal(t, "dungeon crawl", *g.Description)
	assert.Nil(t, g.Image)
	assert.Nil(t, g.Characters)
	assert.True(t, g.HasCharacters)
	assert.Equal(t, 1, *g.MinPlayers)
	assert.Equal(t, 4, *g.MaxPlayers)
	assert.True(t, g.SupportsCooperative)
	assert.True(t, g.SupportsCompetitive)
	assert.True(t, g.SupportsCampaign)
	assert.Equal(t, ModeCampaign, g.DefaultMode)
}

func TestCreateGame_Defaults(t *testing.T) {
	db := openTestDB(t)

	g, err := db.CreateGame(context.Background(), Game{Name: "CATAN"})
	require.NoError(t, err)
	assert.Equal(t, ModeCompetitive, g.DefaultMode)
	assert.Nil(t, g.BGGID)
	assert.Nil(t, g.MinPlayers)
	assert.Nil(t, g.MaxPlayers)
}

func TestCreateGame_Invalid(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		game Game
	}{
		{"missing name", Game{}},
		{"unknown mode", Game{Name: "X", DefaultMode: "solo"}},
		{"zero min players", Game{Name: "X", MinPlayers: intPtr(0)}},
		{"max below min", Game{Name: "X", MinPlayers: intPtr(3), MaxPlayers: intPtr(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.CreateGame(ctx, tt.game)
			assert.ErrorIs(t, err, ErrInvalidArg)
		})
	}
}

func TestCreateGame_Duplicate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.CreateGame(ctx, Game{Name: "CATAN"})
	require.NoError(t, err)
	_, err = db.CreateGame(ctx, Game{Name: "CATAN"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetGameByBGGID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := db.CreateGame(ctx, Game{Name: "CATAN", BGGID: strPtr("13")})
	require.NoError(t, err)

	g, err := db.GetGameByBGGID(ctx, "13")
	require.NoError(t, err)
	assert.Equal(t, created.ID, g.ID)

	_, err = db.GetGameByBGGID(ctx, "14")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDeleteGames(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	a, err := db.CreateGame(ctx, Game{Name: "A"})
	require.NoError(t, err)
	_, err = db.CreateGame(ctx, Game{Name: "B"})
	require.NoError(t, err)

	games, err := db.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "A", games[0].Name)

	require.NoError(t, db.DeleteGame(ctx, a.ID))
	games, err = db.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "B", games[0].Name)

	assert.ErrorIs(t, db.DeleteGame(ctx, a.ID), ErrNotFound)
	_, err = db.GetGame(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
