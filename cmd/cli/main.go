package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amirasaad/minibank/cli"
	"github.com/amirasaad/minibank/infra/initializer"
	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
	log "github.com/charmbracelet/log"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Logs go to stderr so the menu on stdout stays readable.
	deps, err := initializer.InitializeDependencies(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps, cfg)
	defer a.Close()

	deps.Logger.Info("starting session",
		"env", cfg.Env,
		"branch", cfg.Bank.Branch,
		"withdraw_limit", cfg.Bank.WithdrawLimit,
		"max_withdrawals", cfg.Bank.MaxWithdrawals,
	)

	console := cli.New(a.BankService, os.Stdin, os.Stdout,
		cli.WithColor(useColor(cfg.CLI.Color, os.Stdout)),
		cli.WithCurrencySymbol(cfg.Bank.CurrencySymbol),
		cli.WithLogger(deps.Logger),
	)
	return console.Run(context.Background())
}

func useColor(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(out.Fd()))
	}
}
