package repository

import (
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
)

// ClientRepository defines the interface for client data access operations.
// Clients are kept in registration order.
type ClientRepository interface {
	Get(taxID string) (*client.Client, error)
	Create(c *client.Client) error
	List() []*client.Client
	Count() int
}

// AccountRepository defines the interface for account data access operations.
// Accounts are kept in opening order.
type AccountRepository interface {
	Get(number int) (*account.Account, error)
	Create(a *account.Account) error
	List() []*account.Account
	Count() int
}
