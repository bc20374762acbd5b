package app

import "github.com/amirasaad/minibank/pkg/handler"

func (a *App) setupEventBus() {
	handler.RegisterAudit(a.Deps.EventBus, a.Deps.Logger.With("component", "audit"))
}
