package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configFile = ".tabletop.yaml"

const exampleConfig = `# tabletop configuration
db_path: tabletop.db

server:
  port: "3001"
  cors_origins:
    - http://localhost:5173

bgg:
  base_url: https://boardgamegeek.com/xmlapi2
  min_interval: 1s    # BGG asks for at most one request per second
  cache_ttl: 24h
  sweep_interval: 1h
  timeout: 15s

logging:
  level: info   # debug, info, warn, error
  format: text  # text or json

tracing:
  endpoint: ""      # OTLP gRPC endpoint, e.g. localhost:4317
  sample_ratio: 1.0 # fraction of traces kept
`

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active configuration",
			Args:  cobra.NoArgs,
			RunE: run(func(_ *cobra.Command, _ []string) error {
				if outputCfg.JSON {
					PrintResult(cfg)
					return nil
				}

				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, _ = fmt.Fprintln(stdout, "# Active Configuration")
				_, _ = fmt.Fprint(stdout, string(data))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write an example " + configFile,
			Args:  cobra.NoArgs,
			RunE: run(func(_ *cobra.Command, _ []string) error {
				if _, err := os.Stat(configFile); err == nil {
					return fmt.Errorf("config file already exists at %s", configFile)
				}
				if err := os.WriteFile(configFile, []byte(exampleConfig), 0o644); err != nil { //nolint:gosec // Config is not secret
					return fmt.Errorf("failed to write config: %w", err)
				}

				if outputCfg.JSON {
					PrintResult(map[string]string{"path": configFile, "status": "created"})
				} else {
					PrintInfo("Created config file: %s\n", configFile)
				}
				return nil
			}),
		},
	)
	return cmd
}
