package config

import (
	"errors"
	"time"
)

// Log levels follow charmbracelet/log: -4 debug, 0 info, 4 warn, 8 error.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"8"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[minibank]"`
}

// Bank holds the account rules applied to every account opened in a session.
type Bank struct {
	Branch          string        `envconfig:"BRANCH" default:"0001"`
	WithdrawLimit   float64       `envconfig:"WITHDRAW_LIMIT" default:"500"`
	MaxWithdrawals  int           `envconfig:"MAX_WITHDRAWALS" default:"3"`
	StatementPeriod time.Duration `envconfig:"STATEMENT_PERIOD" default:"0s"`
	CurrencySymbol  string        `envconfig:"CURRENCY_SYMBOL" default:"R$"`
}

type CLI struct {
	Color string `envconfig:"COLOR" default:"auto"`
}

type App struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Log  *Log   `envconfig:"LOG"`
	Bank *Bank  `envconfig:"BANK"`
	CLI  *CLI   `envconfig:"CLI"`
}

// Validate checks the values envconfig cannot express as tags.
func (c *App) Validate() error {
	if c.Bank == nil || c.Log == nil || c.CLI == nil {
		return errors.New("config: missing section")
	}
	if c.Bank.Branch == "" {
		return errors.New("config: BANK_BRANCH must not be empty")
	}
	if c.Bank.WithdrawLimit <= 0 {
		return errors.New("config: BANK_WITHDRAW_LIMIT must be positive")
	}
	if c.Bank.MaxWithdrawals <= 0 {
		return errors.New("config: BANK_MAX_WITHDRAWALS must be positive")
	}
	if c.Bank.StatementPeriod < 0 {
		return errors.New("config: BANK_STATEMENT_PERIOD cannot be negative")
	}
	switch c.CLI.Color {
	case "auto", "always", "never":
	default:
		return errors.New("config: CLI_COLOR must be one of auto, always, never")
	}
	return nil
}
