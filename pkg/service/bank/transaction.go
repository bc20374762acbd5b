package bank

import (
	"context"
	"fmt"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
	"github.com/amirasaad/minibank/pkg/domain/events"
)

// Deposit credits amount to account number of the client registered under taxID.
func (s *Service) Deposit(ctx context.Context, taxID string, number int, amount float64) (*account.Account, error) {
	return s.execute(ctx, taxID, number, account.NewDeposit(amount))
}

// Withdraw debits amount from account number of the client registered under taxID.
func (s *Service) Withdraw(ctx context.Context, taxID string, number int, amount float64) (*account.Account, error) {
	return s.execute(ctx, taxID, number, account.NewWithdrawal(amount))
}

func (s *Service) execute(ctx context.Context, taxID string, number int, tx account.Transaction) (*account.Account, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	logger := s.logger.With("tax_id", taxID, "account", number, "kind", tx.Kind(), "amount", tx.Amount())
	c, acc, err := s.resolve(taxID, number)
	if err != nil {
		logger.Warn("transaction rejected: lookup", "error", err)
		return nil, err
	}
	if err := c.Execute(acc, tx); err != nil {
		logger.Warn("transaction rejected", "error", err)
		s.emit(ctx, events.TransactionRejected{
			Meta:          events.NewMeta(),
			AccountNumber: acc.Number,
			TaxID:         c.TaxID,
			Kind:          tx.Kind().String(),
			Amount:        tx.Amount(),
			Reason:        err.Error(),
		})
		return acc, err
	}
	logger.Info("transaction applied", "balance", acc.Balance())
	meta := events.NewMeta()
	switch tx.Kind() {
	case account.KindDeposit:
		s.emit(ctx, events.DepositCompleted{
			Meta: meta, AccountNumber: acc.Number, TaxID: c.TaxID, Amount: tx.Amount(), Balance: acc.Balance(),
		})
	case account.KindWithdrawal:
		s.emit(ctx, events.WithdrawalCompleted{
			Meta: meta, AccountNumber: acc.Number, TaxID: c.TaxID, Amount: tx.Amount(), Balance: acc.Balance(),
		})
	}
	return acc, nil
}

// resolve looks the account up through the client's own list, so a client can
// only reach accounts it owns.
func (s *Service) resolve(taxID string, number int) (*client.Client, *account.Account, error) {
	c, err := s.Client(taxID)
	if err != nil {
		return nil, nil, err
	}
	if len(c.Accounts()) == 0 {
		return nil, nil, client.ErrNoAccounts
	}
	if !c.Owns(number) {
		return nil, nil, fmt.Errorf("%w: %d", account.ErrAccountNotFound, number)
	}
	acc, err := s.accounts.Get(number)
	if err != nil {
		return nil, nil, err
	}
	return c, acc, nil
}
