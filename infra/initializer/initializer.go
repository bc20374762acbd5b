package initializer

import (
	"errors"
	"io"

	infraeventbus "github.com/amirasaad/minibank/infra/eventbus"
	infrarepo "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
)

// InitializeDependencies builds the logger, event bus and registries of one
// session. Logs are written to logOut.
func InitializeDependencies(cfg *config.App, logOut io.Writer) (*app.Deps, error) {
	if cfg == nil || cfg.Log == nil {
		return nil, errors.New("initializer: missing configuration")
	}
	if logOut == nil {
		logOut = io.Discard
	}
	logger := setupLogger(cfg.Log, logOut)
	deps := &app.Deps{
		Logger:   logger,
		EventBus: infraeventbus.NewWithMemory(logger),
		Clients:  infrarepo.NewClientStore(),
		Accounts: infrarepo.NewAccountStore(),
	}
	logger.Debug("dependencies initialized", "env", cfg.Env)
	return deps, nil
}
