// Package config loads application settings from environment variables and an
// optional .env file using Viper.
package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the API.
type Config struct {
	ServerPort     string `mapstructure:"PORT"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`
	InitialBalance string `mapstructure:"INITIAL_BALANCE"`
	AdminUserID    string `mapstructure:"ADMIN_USER_ID"`
	SeedDemoData   bool   `mapstructure:"SEED_DEMO_DATA"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
}

// Load reads configuration from the environment, falling back to a .env file
// in path when present.
func Load(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "3000")
	viper.SetDefault("JWT_SECRET", "banco-api-secret-key")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("INITIAL_BALANCE", "1000.00")
	viper.SetDefault("ADMIN_USER_ID", "1")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// InitialBalanceAmount parses the configured signup balance.
func (c Config) InitialBalanceAmount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(c.InitialBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid INITIAL_BALANCE %q: %w", c.InitialBalance, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("INITIAL_BALANCE must not be negative, got %s", c.InitialBalance)
	}
	return amount, nil
}
