package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeClientRegistered    EventType = "Client.Registered"
	EventTypeAccountOpened       EventType = "Account.Opened"
	EventTypeDepositCompleted    EventType = "Deposit.Completed"
	EventTypeWithdrawalCompleted EventType = "Withdrawal.Completed"
	EventTypeTransactionRejected EventType = "Transaction.Rejected"
)

func (e EventType) String() string { return string(e) }
