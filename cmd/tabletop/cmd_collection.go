package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Manage the game collection",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List games",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			database, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			games, err := database.ListGames(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(games))
			for _, g := range games {
				rows = append(rows, []string{
					fmt.Sprint(g.ID), g.Name, orDash(g.BGGID),
					intOrDash(g.MinPlayers) + "-" + intOrDash(g.MaxPlayers), g.DefaultMode,
				})
			}
			PrintTable(games, []string{"ID", "Name", "BGG", "Players", "Mode"}, rows)
			return nil
		}),
	})
	return cmd
}

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage players",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List players",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				database, err := openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer func() { _ = database.Close() }()

				players, err := database.ListPlayers(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(players))
				for _, p := range players {
					rows = append(rows, []string{fmt.Sprint(p.ID), p.Name})
				}
				PrintTable(players, []string{"ID", "Name"}, rows)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a player",
			Args:  cobra.MinimumNArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				database, err := openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer func() { _ = database.Close() }()

				p, err := database.CreatePlayer(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if outputCfg.JSON {
					PrintResult(p)
					return nil
				}
				PrintInfo("Added player %q (id %d)\n", p.Name, p.ID)
				return nil
			}),
		},
	)
	return cmd
}
