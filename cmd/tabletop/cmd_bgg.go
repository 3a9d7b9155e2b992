package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryanm101/tabletop/internal/bgg"
	"github.com/ryanm101/tabletop/internal/catalog"
)

func newBGGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bgg",
		Short: "Query BoardGameGeek",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search games by name",
			Args:  cobra.MinimumNArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				results, err := newBGGClient().SearchGames(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.ID, r.Name, intOrDash(r.YearPublished)})
				}
				PrintTable(results, []string{"ID", "Name", "Year"}, rows)
				PrintInfo("\n%d result(s)\n", len(results))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a game's details and how it would be imported",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				if !catalog.ValidID(args[0]) {
					return fmt.Errorf("%w: %q", catalog.ErrInvalidID, args[0])
				}
				d, err := newBGGClient().GetGameDetails(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if outputCfg.JSON {
					PrintResult(d)
					return nil
				}
				printDetails(d, bgg.ConvertToGameFormat(d))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "import <id>",
			Short: "Add a game to the collection",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				database, err := openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer func() { _ = database.Close() }()

				svc := catalog.NewService(database, newBGGClient(), nil)
				game, created, err := svc.ImportGame(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if outputCfg.JSON {
					PrintResult(map[string]interface{}{"game": game, "created": created})
					return nil
				}
				if created {
					PrintInfo("Imported %q as game %d (%s)\n", game.Name, game.ID, game.DefaultMode)
				} else {
					PrintInfo("%q is already in the collection as game %d\n", game.Name, game.ID)
				}
				return nil
			}),
		},
	)
	return cmd
}

func printDetails(d *bgg.GameDetails, rec bgg.GameRecord) {
	players := intOrDash(d.MinPlayers) + "-" + intOrDash(d.MaxPlayers)
	rows := [][]string{
		{"ID", d.ID},
		{"Name", d.Name},
		{"Year", intOrDash(d.YearPublished)},
		{"Players", players},
		{"Playing time", intOrDash(d.PlayingTime)},
		{"Age", intOrDash(d.Age)},
		{"Categories", strings.Join(d.Categories, ", ")},
		{"Mechanics", strings.Join(d.Mechanics, ", ")},
		{"Default mode", rec.DefaultMode},
		{"Cooperative", fmt.Sprint(rec.SupportsCooperative)},
		{"Campaign", fmt.Sprint(rec.SupportsCampaign)},
		{"Characters", fmt.Sprint(rec.HasCharacters)},
	}
	if d.Rating != nil {
		rows = append(rows, []string{"Rating", fmt.Sprintf("%.2f", *d.Rating)})
	}
	if d.Complexity != nil {
		rows = append(rows, []string{"Weight", fmt.Sprintf("%.2f", *d.Complexity)})
	}
	PrintTable(d, []string{"Field", "Value"}, rows)
}
