// Package handler contains event handlers subscribed to the session event bus.
package handler

import (
	"context"
	"log/slog"

	"github.com/amirasaad/minibank/pkg/domain/events"
	"github.com/amirasaad/minibank/pkg/eventbus"
)

// AuditedEvents lists the event types the audit handler subscribes to.
var AuditedEvents = []events.EventType{
	events.EventTypeClientRegistered,
	events.EventTypeAccountOpened,
	events.EventTypeDepositCompleted,
	events.EventTypeWithdrawalCompleted,
	events.EventTypeTransactionRejected,
}

// Audit returns a handler that writes one structured log line per event.
func Audit(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("event_type", e.Type())
		switch ev := e.(type) {
		case events.ClientRegistered:
			log.InfoContext(ctx, "client registered", "tax_id", ev.TaxID, "event_id", ev.ID)
		case events.AccountOpened:
			log.InfoContext(ctx, "account opened",
				"tax_id", ev.TaxID, "account", ev.AccountNumber, "branch", ev.Branch, "account_id", ev.AccountID)
		case events.DepositCompleted:
			log.InfoContext(ctx, "deposit completed",
				"tax_id", ev.TaxID, "account", ev.AccountNumber, "amount", ev.Amount, "balance", ev.Balance)
		case events.WithdrawalCompleted:
			log.InfoContext(ctx, "withdrawal completed",
				"tax_id", ev.TaxID, "account", ev.AccountNumber, "amount", ev.Amount, "balance", ev.Balance)
		case events.TransactionRejected:
			log.WarnContext(ctx, "transaction rejected",
				"tax_id", ev.TaxID, "account", ev.AccountNumber, "kind", ev.Kind, "amount", ev.Amount, "reason", ev.Reason)
		default:
			log.DebugContext(ctx, "unhandled event")
		}
		return nil
	}
}

// RegisterAudit subscribes the audit handler to every audited event type.
func RegisterAudit(bus eventbus.Bus, logger *slog.Logger) {
	h := Audit(logger)
	for _, t := range AuditedEvents {
		bus.Register(t, h)
	}
}
