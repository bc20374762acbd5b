package bank

import (
	"github.com/amirasaad/minibank/pkg/dto"
)

// Statement returns the history and balance of account number owned by the
// client registered under taxID.
func (s *Service) Statement(taxID string, number int) (*dto.Statement, error) {
	c, acc, err := s.resolve(taxID, number)
	if err != nil {
		return nil, err
	}
	st := &dto.Statement{
		Branch:        acc.Branch,
		AccountNumber: acc.Number,
		Holder:        c.Name,
		Balance:       acc.Balance(),
	}
	for e := range acc.History().Entries() {
		st.Lines = append(st.Lines, dto.StatementLine{Kind: e.Kind, Amount: e.Amount, Timestamp: e.Timestamp})
	}
	return st, nil
}

// ListAccounts summarizes every account in opening order.
func (s *Service) ListAccounts() []dto.AccountSummary {
	accounts := s.accounts.List()
	out := make([]dto.AccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		holder := acc.ClientID
		if c, err := s.clients.Get(acc.ClientID); err == nil {
			holder = c.Name
		}
		out = append(out, dto.AccountSummary{
			Branch:  acc.Branch,
			Number:  acc.Number,
			Holder:  holder,
			Balance: acc.Balance(),
		})
	}
	return out
}
