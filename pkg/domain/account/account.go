package account

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidAmount is returned when a transaction amount is zero, negative or not finite.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLimitExceeded is returned when a withdrawal exceeds the per-transaction limit.
	ErrLimitExceeded = errors.New("withdrawal exceeds limit")

	// ErrWithdrawalCountExceeded is returned when the withdrawal cap for the
	// statement period has been reached.
	ErrWithdrawalCountExceeded = errors.New("maximum number of withdrawals exceeded")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNilAccount is returned when a transaction is applied to a nil account.
	ErrNilAccount = errors.New("nil account")

	// ErrUnknownTransaction is returned for a transaction kind with no applier.
	ErrUnknownTransaction = errors.New("unknown transaction kind")
)

// DefaultBranch is the branch code assigned when none is configured.
const DefaultBranch = "0001"

// Type is the capability variant of an account.
type Type int

// Account types. Checking accounts add a per-transaction limit and a
// withdrawal cap on top of the basic rules.
const (
	TypeBasic Type = iota
	TypeChecking
)

func (t Type) String() string {
	if t == TypeChecking {
		return "checking"
	}
	return "basic"
}

// Account is a ledger holding a balance and the history of applied transactions.
//
// Invariants:
//   - The balance changes only through Deposit and Withdraw.
//   - The owning client is referenced by tax ID, never by pointer.
//   - History is owned exclusively by the account.
type Account struct {
	ID        uuid.UUID
	Number    int
	Branch    string
	ClientID  string
	Type      Type
	CreatedAt time.Time

	balance        float64
	limit          float64
	maxWithdrawals int
	period         time.Duration
	history        *History
}

// Balance returns the current balance.
func (a *Account) Balance() float64 { return a.balance }

// Limit returns the per-transaction withdrawal limit. Zero for basic accounts.
func (a *Account) Limit() float64 { return a.limit }

// MaxWithdrawals returns the withdrawal cap per statement period. Zero for basic accounts.
func (a *Account) MaxWithdrawals() int { return a.maxWithdrawals }

// StatementPeriod returns the withdrawal counting window; zero means the account lifetime.
func (a *Account) StatementPeriod() time.Duration { return a.period }

// History returns the account history.
func (a *Account) History() *History { return a.hist() }

// hist returns the history, creating it for accounts not built through Builder.
func (a *Account) hist() *History {
	if a.history == nil {
		a.history = NewHistory()
	}
	return a.history
}

// WithdrawalCount returns the withdrawals counted against the cap in the current period.
func (a *Account) WithdrawalCount() int {
	var since time.Time
	if a.period > 0 {
		since = a.hist().Now().Add(-a.period)
	}
	return a.hist().Count(KindWithdrawal, since)
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount float64) error {
	if err := validAmount(a, amount); err != nil {
		return err
	}
	a.balance += amount
	return nil
}

// Withdraw removes amount from the balance after running the rules of the
// account type in order. The first failing rule is returned.
func (a *Account) Withdraw(amount float64) error {
	for _, rule := range WithdrawRules(a.Type) {
		if err := rule(a, amount); err != nil {
			return err
		}
	}
	a.balance -= amount
	return nil
}

// Rule validates a withdrawal request against an account.
type Rule func(a *Account, amount float64) error

var withdrawRules = map[Type][]Rule{
	TypeBasic:    {validAmount, sufficientFunds},
	TypeChecking: {validAmount, sufficientFunds, withinLimit, belowWithdrawalCap},
}

// WithdrawRules returns the ordered withdrawal rules for t.
func WithdrawRules(t Type) []Rule {
	return withdrawRules[t]
}

func validAmount(_ *Account, amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

func sufficientFunds(a *Account, amount float64) error {
	if amount > a.balance {
		return fmt.Errorf("%w: balance %.2f, requested %.2f", ErrInsufficientFunds, a.balance, amount)
	}
	return nil
}

func withinLimit(a *Account, amount float64) error {
	if amount > a.limit {
		return fmt.Errorf("%w: limit %.2f, requested %.2f", ErrLimitExceeded, a.limit, amount)
	}
	return nil
}

func belowWithdrawalCap(a *Account, _ float64) error {
	if a.WithdrawalCount() >= a.maxWithdrawals {
		return fmt.Errorf("%w: %d of %d", ErrWithdrawalCountExceeded, a.WithdrawalCount(), a.maxWithdrawals)
	}
	return nil
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id             uuid.UUID
	number         int
	branch         string
	clientID       string
	typ            Type
	balance        float64
	limit          float64
	maxWithdrawals int
	period         time.Duration
	now            func() time.Time
	createdAt      time.Time
}

// New creates a Builder for a basic account on the default branch.
func New() *Builder {
	return &Builder{
		id:     uuid.New(),
		branch: DefaultBranch,
		typ:    TypeBasic,
		now:    time.Now,
	}
}

// WithID sets the internal identifier.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(n int) *Builder {
	b.number = n
	return b
}

// WithBranch sets the branch code.
func (b *Builder) WithBranch(branch string) *Builder {
	b.branch = branch
	return b
}

// WithClientID sets the tax ID of the owning client. This is a mandatory field.
func (b *Builder) WithClientID(taxID string) *Builder {
	b.clientID = taxID
	return b
}

// WithBalance sets the opening balance. Intended for test setup.
func (b *Builder) WithBalance(balance float64) *Builder {
	b.balance = balance
	return b
}

// Checking turns the account into a checking account with a per-transaction
// withdrawal limit and a withdrawal cap per statement period.
func (b *Builder) Checking(limit float64, maxWithdrawals int) *Builder {
	b.typ = TypeChecking
	b.limit = limit
	b.maxWithdrawals = maxWithdrawals
	return b
}

// WithStatementPeriod sets the withdrawal counting window. Zero counts the
// whole account lifetime.
func (b *Builder) WithStatementPeriod(d time.Duration) *Builder {
	b.period = d
	return b
}

// WithClock sets the clock used to stamp history entries.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.number <= 0 {
		return nil, errors.New("account number must be positive")
	}
	if b.clientID == "" {
		return nil, errors.New("client ID is required")
	}
	if b.branch == "" {
		return nil, errors.New("branch is required")
	}
	if b.balance < 0 {
		return nil, errors.New("opening balance cannot be negative")
	}
	if b.period < 0 {
		return nil, errors.New("statement period cannot be negative")
	}
	if b.typ == TypeChecking {
		if b.limit <= 0 {
			return nil, errors.New("withdrawal limit must be positive")
		}
		if b.maxWithdrawals <= 0 {
			return nil, errors.New("withdrawal cap must be positive")
		}
	}
	createdAt := b.createdAt
	if createdAt.IsZero() {
		createdAt = b.now()
	}
	return &Account{
		ID:             b.id,
		Number:         b.number,
		Branch:         b.branch,
		ClientID:       b.clientID,
		Type:           b.typ,
		CreatedAt:      createdAt,
		balance:        b.balance,
		limit:          b.limit,
		maxWithdrawals: b.maxWithdrawals,
		period:         b.period,
		history:        NewHistoryWithClock(b.now),
	}, nil
}
