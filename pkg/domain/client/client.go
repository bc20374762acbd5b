package client

import (
	"errors"
	"slices"
	"time"

	"github.com/amirasaad/minibank/pkg/domain/account"
)

var (
	// ErrClientNotFound is returned when no client is registered under a tax ID.
	ErrClientNotFound = errors.New("client not found")
	// ErrDuplicateClient is returned when a tax ID is already registered.
	ErrDuplicateClient = errors.New("client already registered")
	// ErrNoAccounts is returned when a client owns no account.
	ErrNoAccounts = errors.New("client has no accounts")
	// ErrInvalidClientData is returned when registration input fails validation.
	ErrInvalidClientData = errors.New("invalid client data")
)

// Client is a registered person who may own one or more accounts.
type Client struct {
	TaxID     string
	Name      string
	BirthDate string
	Address   string
	CreatedAt time.Time

	accounts []int
}

// New creates a client with no accounts.
func New(taxID, name, birthDate, address string) (*Client, error) {
	if taxID == "" {
		return nil, errors.New("tax ID cannot be empty")
	}
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	return &Client{
		TaxID:     taxID,
		Name:      name,
		BirthDate: birthDate,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AddAccount appends an account number to the client's list. Numbers are not
// de-duplicated.
func (c *Client) AddAccount(number int) {
	c.accounts = append(c.accounts, number)
}

// Accounts returns the owned account numbers in opening order.
func (c *Client) Accounts() []int {
	return slices.Clone(c.accounts)
}

// Owns reports whether number is in the client's account list.
func (c *Client) Owns(number int) bool {
	return slices.Contains(c.accounts, number)
}

// Execute applies tx to acc on behalf of the client.
//
// Execute does not check that acc belongs to c; callers that need that
// guarantee must resolve acc through Owns first.
func (c *Client) Execute(acc *account.Account, tx account.Transaction) error {
	return tx.Apply(acc)
}
