package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"

	"carrotgamba/database"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string `env:"DISCORD_TOKEN"`
	GuildID      string `env:"GUILD_ID"`

	// Database configuration
	DatabaseURL      string `env:"DATABASE_URL"`
	DatabaseName     string `env:"DATABASE_NAME"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"8"`

	// NATS configuration
	NATSServers string `env:"NATS_SERVERS" envDefault:"nats://nats:4222"`

	// Economy configuration
	StartingBalance     int64         `env:"STARTING_BALANCE" envDefault:"1000"`
	DailyClaimAmount    int64         `env:"DAILY_CLAIM_AMOUNT" envDefault:"1000"`
	WeeklyClaimAmount   int64         `env:"WEEKLY_CLAIM_AMOUNT" envDefault:"10000"`
	DailyClaimCooldown  time.Duration `env:"DAILY_CLAIM_COOLDOWN" envDefault:"24h"`
	WeeklyClaimCooldown time.Duration `env:"WEEKLY_CLAIM_COOLDOWN" envDefault:"168h"`

	// Interactive game session timeout
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"60s"`

	// Leaderboard size
	LeaderboardSize int `env:"LEADERBOARD_SIZE" envDefault:"10"`

	// Environment is "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:         "test",
		DatabaseMaxConns:    4,
		StartingBalance:     1000,
		DailyClaimAmount:    1000,
		WeeklyClaimAmount:   10000,
		DailyClaimCooldown:  24 * time.Hour,
		WeeklyClaimCooldown: 168 * time.Hour,
		SessionTimeout:      time.Minute,
		LeaderboardSize:     10,
	}
}
