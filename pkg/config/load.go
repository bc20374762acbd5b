package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads an optional env file and then the process environment into App.
// The first path that can be found and parsed wins; with no paths the nearest
// .env is tried. A missing file is not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		envFilePath = []string{".env"}
	}
	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Warn("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Debug("Loaded environment file", "path", foundPath)
		break
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"branch", cfg.Bank.Branch,
		"withdraw_limit", cfg.Bank.WithdrawLimit,
		"max_withdrawals", cfg.Bank.MaxWithdrawals,
		"statement_period", cfg.Bank.StatementPeriod,
	)
	return &cfg, nil
}
