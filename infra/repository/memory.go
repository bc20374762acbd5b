package repository

import (
	"fmt"
	"slices"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
	"github.com/amirasaad/minibank/pkg/repository"
)

// ClientStore is an in-memory ClientRepository.
type ClientStore struct {
	ordered []*client.Client
	byTaxID map[string]*client.Client
}

// NewClientStore returns an empty client store.
func NewClientStore() *ClientStore {
	return &ClientStore{byTaxID: make(map[string]*client.Client)}
}

func (s *ClientStore) Get(taxID string) (*client.Client, error) {
	c, ok := s.byTaxID[taxID]
	if !ok {
		return nil, client.ErrClientNotFound
	}
	return c, nil
}

func (s *ClientStore) Create(c *client.Client) error {
	if _, ok := s.byTaxID[c.TaxID]; ok {
		return fmt.Errorf("%w: %s", client.ErrDuplicateClient, c.TaxID)
	}
	s.byTaxID[c.TaxID] = c
	s.ordered = append(s.ordered, c)
	return nil
}

func (s *ClientStore) List() []*client.Client { return slices.Clone(s.ordered) }

func (s *ClientStore) Count() int { return len(s.ordered) }

// AccountStore is an in-memory AccountRepository.
type AccountStore struct {
	ordered  []*account.Account
	byNumber map[int]*account.Account
}

// NewAccountStore returns an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{byNumber: make(map[int]*account.Account)}
}

func (s *AccountStore) Get(number int) (*account.Account, error) {
	a, ok := s.byNumber[number]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func (s *AccountStore) Create(a *account.Account) error {
	if _, ok := s.byNumber[a.Number]; ok {
		return fmt.Errorf("account number %d already in use", a.Number)
	}
	s.byNumber[a.Number] = a
	s.ordered = append(s.ordered, a)
	return nil
}

func (s *AccountStore) List() []*account.Account { return slices.Clone(s.ordered) }

func (s *AccountStore) Count() int { return len(s.ordered) }

var (
	_ repository.ClientRepository  = (*ClientStore)(nil)
	_ repository.AccountRepository = (*AccountStore)(nil)
)
