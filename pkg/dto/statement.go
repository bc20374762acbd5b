package dto

import (
	"time"

	"github.com/amirasaad/minibank/pkg/domain/account"
)

// StatementLine is one history entry as shown on a statement.
type StatementLine struct {
	Kind      account.Kind
	Amount    float64
	Timestamp time.Time
}

// Statement is a read-only view of an account's history and balance.
type Statement struct {
	Branch        string
	AccountNumber int
	Holder        string
	Lines         []StatementLine
	Balance       float64
}

// AccountSummary is a read-only view used when listing accounts.
type AccountSummary struct {
	Branch  string
	Number  int
	Holder  string
	Balance float64
}
