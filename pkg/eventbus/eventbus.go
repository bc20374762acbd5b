package eventbus

import (
	"context"

	"github.com/amirasaad/minibank/pkg/domain/events"
)

// HandlerFunc handles one published event.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus defines the contract for emitting and registering handlers for domain events.
type Bus interface {
	Emit(ctx context.Context, event events.Event) error
	Register(eventType events.EventType, handler HandlerFunc)
}
