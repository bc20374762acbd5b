package account

import "fmt"

// Kind identifies the variant of a Transaction.
type Kind int

// Transaction kinds.
const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Transaction is a requested mutation of an account balance. It is immutable once
// constructed and is consumed into a History entry when applied successfully.
type Transaction struct {
	kind   Kind
	amount float64
}

// NewDeposit returns a deposit transaction for amount.
func NewDeposit(amount float64) Transaction {
	return Transaction{kind: KindDeposit, amount: amount}
}

// NewWithdrawal returns a withdrawal transaction for amount.
func NewWithdrawal(amount float64) Transaction {
	return Transaction{kind: KindWithdrawal, amount: amount}
}

// Kind returns the transaction variant.
func (t Transaction) Kind() Kind { return t.kind }

// Amount returns the requested amount.
func (t Transaction) Amount() float64 { return t.amount }

// applier mutates an account for one transaction kind.
type applier func(a *Account, amount float64) error

var appliers = map[Kind]applier{
	KindDeposit:    (*Account).Deposit,
	KindWithdrawal: (*Account).Withdraw,
}

// Apply runs the transaction against a and, only when the account accepts it,
// records it in the account history.
func (t Transaction) Apply(a *Account) error {
	if a == nil {
		return ErrNilAccount
	}
	apply, ok := appliers[t.kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransaction, t.kind)
	}
	h := a.hist()
	if err := apply(a, t.amount); err != nil {
		return err
	}
	h.Record(t)
	return nil
}
