// Package events defines the domain events published by the bank session.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// Meta carries the fields shared by all events.
type Meta struct {
	ID         uuid.UUID
	OccurredAt time.Time
}

// NewMeta stamps a new event identity.
func NewMeta() Meta {
	return Meta{ID: uuid.New(), OccurredAt: time.Now().UTC()}
}

// ClientRegistered is emitted after a client registration succeeds.
type ClientRegistered struct {
	Meta
	TaxID string
	Name  string
}

func (e ClientRegistered) Type() string { return EventTypeClientRegistered.String() }

// AccountOpened is emitted after an account is opened for a client.
type AccountOpened struct {
	Meta
	AccountID     uuid.UUID
	AccountNumber int
	Branch        string
	TaxID         string
}

func (e AccountOpened) Type() string { return EventTypeAccountOpened.String() }

// DepositCompleted is emitted after a deposit is applied and recorded.
type DepositCompleted struct {
	Meta
	AccountNumber int
	TaxID         string
	Amount        float64
	Balance       float64
}

func (e DepositCompleted) Type() string { return EventTypeDepositCompleted.String() }

// WithdrawalCompleted is emitted after a withdrawal is applied and recorded.
type WithdrawalCompleted struct {
	Meta
	AccountNumber int
	TaxID         string
	Amount        float64
	Balance       float64
}

func (e WithdrawalCompleted) Type() string { return EventTypeWithdrawalCompleted.String() }

// TransactionRejected is emitted when an account refuses a transaction.
type TransactionRejected struct {
	Meta
	AccountNumber int
	TaxID         string
	Kind          string
	Amount        float64
	Reason        string
}

func (e TransactionRejected) Type() string { return EventTypeTransactionRejected.String() }
