// Package bank provides the session service of the ledger. A Service owns the
// client and account registries for one console session and is the only place
// that turns console commands into domain operations.
//
// Every mutating operation publishes a domain event on the configured bus so
// that handlers such as the audit logger can observe the session.
package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
	"github.com/amirasaad/minibank/pkg/domain/events"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/eventbus"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/go-playground/validator/v10"
)

// ErrSessionClosed is returned by every operation after Close.
var ErrSessionClosed = errors.New("session closed")

// Service provides client registration, account opening, transactions and
// statements for one in-memory session.
type Service struct {
	clients  repository.ClientRepository
	accounts repository.AccountRepository
	bus      eventbus.Bus
	rules    config.Bank
	validate *validator.Validate
	logger   *slog.Logger
	closed   bool
}

// New creates a Service. A nil rules value falls back to the default branch,
// a 500 withdrawal limit and 3 withdrawals per lifetime.
func New(
	bus eventbus.Bus,
	clients repository.ClientRepository,
	accounts repository.AccountRepository,
	rules *config.Bank,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	r := config.Bank{
		Branch:         account.DefaultBranch,
		WithdrawLimit:  500,
		MaxWithdrawals: 3,
		CurrencySymbol: "R$",
	}
	if rules != nil {
		r = *rules
	}
	return &Service{
		clients:  clients,
		accounts: accounts,
		bus:      bus,
		rules:    r,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("service", "bank"),
	}
}

// Rules returns the account rules of the session.
func (s *Service) Rules() config.Bank { return s.rules }

// Close ends the session. Registries stay readable but no further command is accepted.
func (s *Service) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.logger.Info("session closed", "clients", s.clients.Count(), "accounts", s.accounts.Count())
}

// RegisterClient validates req and registers a new client under its tax ID.
func (s *Service) RegisterClient(ctx context.Context, req dto.RegisterClient) (*client.Client, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	req.TaxID = strings.TrimSpace(req.TaxID)
	req.Name = strings.TrimSpace(req.Name)
	req.BirthDate = strings.TrimSpace(req.BirthDate)
	req.Address = strings.TrimSpace(req.Address)

	logger := s.logger.With("tax_id", req.TaxID)
	if _, err := s.clients.Get(req.TaxID); err == nil {
		logger.Warn("RegisterClient rejected: duplicate tax ID")
		return nil, fmt.Errorf("%w: %s", client.ErrDuplicateClient, req.TaxID)
	}
	if err := s.validate.Struct(req); err != nil {
		logger.Warn("RegisterClient rejected: validation", "error", err)
		return nil, fmt.Errorf("%w: %s", client.ErrInvalidClientData, describeValidation(err))
	}
	c, err := client.New(req.TaxID, req.Name, req.BirthDate, req.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrInvalidClientData, err)
	}
	if err := s.clients.Create(c); err != nil {
		return nil, err
	}
	logger.Info("RegisterClient successful")
	s.emit(ctx, events.ClientRegistered{Meta: events.NewMeta(), TaxID: c.TaxID, Name: c.Name})
	return c, nil
}

// OpenAccount opens a checking account for the client registered under taxID.
// Account numbers are assigned sequentially across the session.
func (s *Service) OpenAccount(ctx context.Context, taxID string) (*account.Account, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	taxID = strings.TrimSpace(taxID)
	logger := s.logger.With("tax_id", taxID)
	c, err := s.clients.Get(taxID)
	if err != nil {
		logger.Warn("OpenAccount rejected", "error", err)
		return nil, err
	}
	acc, err := account.New().
		WithNumber(s.accounts.Count() + 1).
		WithBranch(s.rules.Branch).
		WithClientID(c.TaxID).
		Checking(s.rules.WithdrawLimit, s.rules.MaxWithdrawals).
		WithStatementPeriod(s.rules.StatementPeriod).
		Build()
	if err != nil {
		logger.Error("OpenAccount failed: domain error", "error", err)
		return nil, err
	}
	if err := s.accounts.Create(acc); err != nil {
		logger.Error("OpenAccount failed: repository error", "error", err)
		return nil, err
	}
	c.AddAccount(acc.Number)
	logger.Info("OpenAccount successful", "account", acc.Number)
	s.emit(ctx, events.AccountOpened{
		Meta:          events.NewMeta(),
		AccountID:     acc.ID,
		AccountNumber: acc.Number,
		Branch:        acc.Branch,
		TaxID:         c.TaxID,
	})
	return acc, nil
}

// Client returns the client registered under taxID.
func (s *Service) Client(taxID string) (*client.Client, error) {
	return s.clients.Get(strings.TrimSpace(taxID))
}

// Clients returns every registered client in registration order.
func (s *Service) Clients() []*client.Client { return s.clients.List() }

// Accounts returns every account in opening order.
func (s *Service) Accounts() []*account.Account { return s.accounts.List() }

// ClientAccounts returns the accounts owned by the client registered under
// taxID, in opening order.
func (s *Service) ClientAccounts(taxID string) ([]*account.Account, error) {
	c, err := s.Client(taxID)
	if err != nil {
		return nil, err
	}
	numbers := c.Accounts()
	if len(numbers) == 0 {
		return nil, client.ErrNoAccounts
	}
	out := make([]*account.Account, 0, len(numbers))
	for _, n := range numbers {
		acc, err := s.accounts.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("failed to emit event", "type", e.Type(), "error", err)
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "number":
			parts = append(parts, fe.Field()+" must contain only digits")
		case "datetime":
			parts = append(parts, fe.Field()+" must be dd-mm-yyyy")
		case "max":
			parts = append(parts, fe.Field()+" is too long")
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
