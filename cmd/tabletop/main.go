package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/baggage"

	"github.com/ryanm101/tabletop/internal/bgg"
	"github.com/ryanm101/tabletop/internal/config"
	"github.com/ryanm101/tabletop/internal/db"
	"github.com/ryanm101/tabletop/internal/logging"
	"github.com/ryanm101/tabletop/internal/tracing"
)

const version = "1.0.0"

var cfg *config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var shutdownTracing func(context.Context) error

	root := &cobra.Command{
		Use:           "tabletop",
		Short:         "Track board game sessions and import games from BoardGameGeek",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				PrintError("Warning: failed to load config: %v\n", err)
				cfg = config.DefaultConfig()
			}

			logging.Setup(logging.Config{
				Format: cfg.Logging.Format,
				Level:  cfg.Logging.Level,
			})

			m, _ := baggage.NewMember("app.version", version)
			b, _ := baggage.New(m)
			ctx := baggage.ContextWithBaggage(cmd.Context(), b)
			cmd.SetContext(ctx)

			shutdownTracing, err = tracing.Setup(ctx, tracing.Config{
				Endpoint:    cfg.Tracing.Endpoint,
				SampleRatio: cfg.Tracing.SampleRatio,
			})
			if err != nil {
				logging.Error("failed to setup tracing", "error", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if shutdownTracing == nil {
				return
			}
			if err := shutdownTracing(cmd.Context()); err != nil {
				logging.Error("failed to shutdown tracing", "error", err)
			}
		},
	}

	root.PersistentFlags().BoolVar(&outputCfg.JSON, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&outputCfg.Quiet, "quiet", "q", false, "suppress informational output")

	root.AddCommand(
		newServeCmd(),
		newBGGCmd(),
		newGamesCmd(),
		newPlayersCmd(),
		newConfigCmd(),
	)
	return root
}

// run wraps a command body so failures are reported the same way everywhere.
func run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			PrintError("Error: %v\n", err)
			return err
		}
		return nil
	}
}

func openDB(ctx context.Context) (*db.DB, error) {
	database, err := db.Open(ctx, cfg.GetDBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}

func newBGGClient() *bgg.Client {
	return bgg.NewClient(
		bgg.WithBaseURL(cfg.GetBGGBaseURL()),
		bgg.WithMinInterval(cfg.GetMinInterval()),
		bgg.WithCacheTTL(cfg.GetCacheTTL()),
		bgg.WithHTTPClient(&http.Client{Timeout: cfg.GetBGGTimeout()}),
	)
}
