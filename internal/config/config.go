package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the bot configuration, loaded from the environment with an
// optional .env file fallback.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"chatclick.json"`
	DeveloperID  string `env:"DEVELOPER_ID"`
	LogPath      string `env:"LOG_PATH"`
	// CommandsPerMinute is the per-user command budget enforced by the
	// rate limit middleware.
	CommandsPerMinute int `env:"COMMANDS_PER_MINUTE" envDefault:"20"`
}

// New loads the configuration.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
