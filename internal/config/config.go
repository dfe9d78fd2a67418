// /internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds all runtime settings, parsed from the environment
// (optionally seeded from a local .env file).
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	OwnerID      string `env:"OWNER_ID"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"data/aiko.json"`
	LogPath     string `env:"LOG_PATH" envDefault:"data/aiko.log"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// AutoRespondChannelID names a channel where every message is answered
	// without requiring a mention. Empty disables the surface.
	AutoRespondChannelID string `env:"AUTORESPOND_CHANNEL_ID"`

	AIProvider string `env:"AI_PROVIDER" envDefault:"pollinations"`
	AIModel    string `env:"AI_MODEL" envDefault:"openai"`

	// TopGGToken enables vote checks and guild-count reporting. Empty token
	// means every vote check reports "not voted".
	TopGGToken string `env:"TOPGG_TOKEN"`

	// Quota: fixed window per user per surface. Non-premium users get at most
	// QuotaLimit responses per QuotaWindow.
	QuotaWindow time.Duration `env:"QUOTA_WINDOW" envDefault:"1h"`
	QuotaLimit  int           `env:"QUOTA_LIMIT" envDefault:"20"`

	// MemoryCap is the non-premium conversation history cap, in exchange pairs.
	MemoryCap int `env:"MEMORY_CAP" envDefault:"25"`

	VoteRewardPoints int `env:"VOTE_REWARD_POINTS" envDefault:"100"`

	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
