package app

import (
	"log/slog"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/eventbus"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/amirasaad/minibank/pkg/service/bank"
)

// Deps contains the infrastructure shared by the services of one session.
type Deps struct {
	Clients  repository.ClientRepository
	Accounts repository.AccountRepository
	EventBus eventbus.Bus
	Logger   *slog.Logger
}

type App struct {
	Deps        *Deps
	Config      *config.App
	BankService *bank.Service
}

// New wires the event handlers and services of a session.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()
	app.BankService = bank.New(deps.EventBus, deps.Clients, deps.Accounts, cfg.Bank, deps.Logger)
	return app
}

// Close tears the session down.
func (a *App) Close() {
	a.BankService.Close()
}
