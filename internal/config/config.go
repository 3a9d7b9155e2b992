package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDBPath        = "tabletop.db"
	defaultPort          = "3001"
	defaultBGGBaseURL    = "https://boardgamegeek.com/xmlapi2"
	defaultMinInterval   = time.Second
	defaultCacheTTL      = 24 * time.Hour
	defaultSweepInterval = time.Hour
	defaultBGGTimeout    = 15 * time.Second
)

// Config holds application configuration.
type Config struct {
	DBPath  string        `yaml:"db_path"`
	Server  ServerConfig  `yaml:"server"`
	BGG     BGGConfig     `yaml:"bgg"`
	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// BGGConfig configures the BoardGameGeek client.
type BGGConfig struct {
	BaseURL       string        `yaml:"base_url"`
	MinInterval   time.Duration `yaml:"min_interval"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	Timeout       time.Duration `yaml:"timeout"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// TracingConfig holds the OTLP endpoint; tracing is off when it is empty.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DBPath: defaultDBPath,
		Server: ServerConfig{
			Port:        defaultPort,
			CORSOrigins: []string{"http://localhost:5173"},
		},
		BGG: BGGConfig{
			BaseURL:       defaultBGGBaseURL,
			MinInterval:   defaultMinInterval,
			CacheTTL:      defaultCacheTTL,
			SweepInterval: defaultSweepInterval,
			Timeout:       defaultBGGTimeout,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
	}
}

func configPaths() []string {
	paths := []string{
		".tabletop.yaml",
		".tabletop.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tabletop", "config.yaml"),
			filepath.Join(home, ".config", "tabletop", "config.yml"),
			filepath.Join(home, ".tabletop.yaml"),
		)
	}

	return paths
}

// Load loads configuration from file or returns defaults.
// Priority: env TABLETOP_CONFIG > search paths > defaults, then env overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if envPath := os.Getenv("TABLETOP_CONFIG"); envPath != "" {
		if err := cfg.loadFromFile(envPath); err != nil {
			return nil, err
		}
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvOverrides() {
	if dbPath := os.Getenv("TABLETOP_DB"); dbPath != "" {
		c.DBPath = dbPath
	}
	if port := os.Getenv("TABLETOP_PORT"); port != "" {
		c.Server.Port = port
	}
	if baseURL := os.Getenv("TABLETOP_BGG_BASE_URL"); baseURL != "" {
		c.BGG.BaseURL = baseURL
	}
	if level := os.Getenv("TABLETOP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		c.Tracing.Endpoint = endpoint
	}
}

// GetDBPath returns the database path, applying defaults.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return defaultDBPath
}

// GetPort returns the HTTP listen port.
func (c *Config) GetPort() string {
	if c.Server.Port != "" {
		return c.Server.Port
	}
	return defaultPort
}

// GetBGGBaseURL returns the BGG API root.
func (c *Config) GetBGGBaseURL() string {
	if c.BGG.BaseURL != "" {
		return c.BGG.BaseURL
	}
	return defaultBGGBaseURL
}

// GetMinInterval returns the minimum delay between BGG requests.
// Zero is kept as configured and disables limiting.
func (c *Config) GetMinInterval() time.Duration {
	if c.BGG.MinInterval < 0 {
		return defaultMinInterval
	}
	return c.BGG.MinInterval
}

// GetCacheTTL returns how long BGG details stay cached.
func (c *Config) GetCacheTTL() time.Duration {
	if c.BGG.CacheTTL > 0 {
		return c.BGG.CacheTTL
	}
	return defaultCacheTTL
}

// GetSweepInterval returns how often the BGG cache is pruned.
func (c *Config) GetSweepInterval() time.Duration {
	if c.BGG.SweepInterval > 0 {
		return c.BGG.SweepInterval
	}
	return defaultSweepInterval
}

// GetBGGTimeout returns the HTTP timeout for BGG requests.
func (c *Config) GetBGGTimeout() time.Duration {
	if c.BGG.Timeout > 0 {
		return c.BGG.Timeout
	}
	return defaultBGGTimeout
}
