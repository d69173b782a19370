package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jstittsworth/fplmate/internal/models"
)

// Missing-metadata policies for the data aggregator
const (
	MissingMetadataAbort = "abort"
	MissingMetadataSkip  = "skip"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Dataset
	DataDir string `mapstructure:"DATA_DIR"`
	Season  string `mapstructure:"SEASON"`

	// Squad constraints
	MaxPlayersPerTeam int    `mapstructure:"MAX_PLAYERS_PER_TEAM"`
	MaxSpend          int    `mapstructure:"MAX_SPEND"`
	TeamStructureRaw  string `mapstructure:"TEAM_STRUCTURE"`

	// Form windows
	FormWindow  int `mapstructure:"FORM_WINDOW"`
	StatsWindow int `mapstructure:"STATS_WINDOW"`

	MissingMetadataPolicy string `mapstructure:"MISSING_METADATA_POLICY"`

	// Rating model
	ModelPath string `mapstructure:"MODEL_PATH"`

	// Rate limiting for the recommendation endpoint
	RateLimitPerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("DATA_DIR", "data/Fantasy-Premier-League/data")
	v.SetDefault("SEASON", "2024-25")
	v.SetDefault("MAX_PLAYERS_PER_TEAM", 3)
	v.SetDefault("MAX_SPEND", 1000)
	v.SetDefault("TEAM_STRUCTURE", "GK:2,DEF:5,MID:5,FWD:3")
	v.SetDefault("FORM_WINDOW", 5)
	v.SetDefault("STATS_WINDOW", 6)
	v.SetDefault("MISSING_METADATA_POLICY", MissingMetadataAbort)
	v.SetDefault("MODEL_PATH", "trained_models/fpl_linear_model.json")
	v.SetDefault("RATE_LIMIT_PER_SECOND", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the recommender cannot run with
func (c *Config) Validate() error {
	if c.MaxPlayersPerTeam < 1 {
		return fmt.Errorf("MAX_PLAYERS_PER_TEAM must be at least 1, got %d", c.MaxPlayersPerTeam)
	}
	if c.MaxSpend < 0 {
		return fmt.Errorf("MAX_SPEND must not be negative, got %d", c.MaxSpend)
	}
	if c.FormWindow < 0 || c.StatsWindow < 0 {
		return fmt.Errorf("FORM_WINDOW and STATS_WINDOW must not be negative")
	}
	switch c.MissingMetadataPolicy {
	case MissingMetadataAbort, MissingMetadataSkip:
	default:
		return fmt.Errorf("MISSING_METADATA_POLICY must be %q or %q, got %q",
			MissingMetadataAbort, MissingMetadataSkip, c.MissingMetadataPolicy)
	}
	if _, err := c.TeamStructure(); err != nil {
		return fmt.Errorf("invalid TEAM_STRUCTURE: %w", err)
	}
	return nil
}

// TeamStructure parses TEAM_STRUCTURE into ordered roster slots
func (c *Config) TeamStructure() (models.TeamStructure, error) {
	return models.ParseTeamStructure(c.TeamStructureRaw)
}

// SeasonDir is the directory holding one season's CSV exports
func (c *Config) SeasonDir() string {
	return filepath.Join(c.DataDir, c.Season)
}

// PlayersDir holds one name_id folder per player
func (c *Config) PlayersDir() string {
	return filepath.Join(c.SeasonDir(), "players")
}

func (c *Config) PlayersRawPath() string {
	return filepath.Join(c.SeasonDir(), "players_raw.csv")
}

func (c *Config) TeamsPath() string {
	return filepath.Join(c.SeasonDir(), "teams.csv")
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
