// Package cli implements the interactive text front end of the ledger: the
// menu loop, prompts, numeric parsing and formatted output. All business
// decisions are delegated to the bank session service.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/service/bank"
)

var (
	// errMalformedInput aborts the current command when a number cannot be parsed.
	errMalformedInput = errors.New("malformed input")
	errReadInput      = errors.New("read input")
)

// Option configures a Console.
type Option func(*Console)

// WithColor enables or disables coloured output.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.colored = enabled }
}

// WithCurrencySymbol sets the symbol printed in front of amounts.
func WithCurrencySymbol(symbol string) Option {
	return func(c *Console) { c.currency = symbol }
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) { c.logger = logger }
}

// Console reads commands from an input stream and dispatches them to a bank session.
type Console struct {
	svc      *bank.Service
	in       *bufio.Scanner
	out      *printer
	currency string
	colored  bool
	logger   *slog.Logger
	commands map[string]func(ctx context.Context) error
}

// New creates a Console reading from in and writing to out.
func New(svc *bank.Service, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		svc:      svc,
		in:       bufio.NewScanner(in),
		currency: "R$",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.out = newPrinter(out, c.colored)
	c.commands = map[string]func(ctx context.Context) error{
		"d":  c.deposit,
		"s":  c.withdraw,
		"e":  c.statement,
		"nc": c.newAccount,
		"lc": c.listAccounts,
		"nu": c.newClient,
	}
	return c
}

// Run executes the menu loop until the quit command, end of input or ctx is done.
// Business rule failures are printed and never end the loop.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.prompt(menuText)
		if errors.Is(err, io.EOF) || choice == "q" {
			c.out.Println("Exiting...")
			return nil
		}
		if err != nil {
			return err
		}
		cmd, ok := c.commands[choice]
		if !ok {
			c.out.Println("Invalid operation, please select the desired operation again.")
			continue
		}
		c.logger.Debug("command", "choice", choice)
		if err := cmd(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				c.out.Println("Exiting...")
				return nil
			}
			if !errors.Is(err, errMalformedInput) {
				return err
			}
		}
	}
}

func (c *Console) prompt(label string) (string, error) {
	c.out.Printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", errReadInput, err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) promptAmount(label string) (float64, error) {
	raw, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.out.Failure(fmt.Sprintf("Invalid number: %q", raw))
		return 0, errMalformedInput
	}
	return v, nil
}

// chooseAccount picks the account to operate on. A single account is used
// directly; otherwise the user picks one from the list.
func (c *Console) chooseAccount(taxID string) (*account.Account, error) {
	accounts, err := c.svc.ClientAccounts(taxID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 1 {
		return accounts[0], nil
	}
	c.out.Println("Choose an account:")
	for i, a := range accounts {
		c.out.Printf("%d: %d\n", i+1, a.Number)
	}
	raw, err := c.prompt("Account: ")
	if err != nil {
		return nil, err
	}
	idx, err := strconv.Atoi(raw)
	if err != nil {
		c.out.Failure(fmt.Sprintf("Invalid number: %q", raw))
		return nil, errMalformedInput
	}
	if idx < 1 || idx > len(accounts) {
		return nil, account.ErrAccountNotFound
	}
	return accounts[idx-1], nil
}

// report prints err as a failure and reports whether the command must stop.
// Input errors are passed back to Run.
func (c *Console) report(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errMalformedInput) || errors.Is(err, errReadInput) {
		return err
	}
	c.out.Failure(failureMessage(err))
	return nil
}

func (c *Console) deposit(ctx context.Context) error {
	return c.transact(ctx, "deposit", c.svc.Deposit, "Deposit completed successfully!")
}

func (c *Console) withdraw(ctx context.Context) error {
	return c.transact(ctx, "withdrawal", c.svc.Withdraw, "Withdrawal completed successfully!")
}

type transactFunc func(ctx context.Context, taxID string, number int, amount float64) (*account.Account, error)

func (c *Console) transact(ctx context.Context, label string, fn transactFunc, okMsg string) error {
	taxID, err := c.prompt("Enter the client's tax ID: ")
	if err != nil {
		return err
	}
	if _, err := c.svc.Client(taxID); err != nil {
		return c.report(err)
	}
	amount, err := c.promptAmount(fmt.Sprintf("Enter the %s amount: ", label))
	if err != nil {
		return err
	}
	acc, err := c.chooseAccount(taxID)
	if err != nil {
		return c.report(err)
	}
	if _, err := fn(ctx, taxID, acc.Number, amount); err != nil {
		return c.report(err)
	}
	c.out.Success(okMsg)
	return nil
}

func (c *Console) statement(_ context.Context) error {
	taxID, err := c.prompt("Enter the client's tax ID: ")
	if err != nil {
		return err
	}
	acc, err := c.chooseAccount(taxID)
	if err != nil {
		return c.report(err)
	}
	st, err := c.svc.Statement(taxID, acc.Number)
	if err != nil {
		return c.report(err)
	}
	c.printStatement(st)
	return nil
}

func (c *Console) newClient(ctx context.Context) error {
	taxID, err := c.prompt("Enter the tax ID (digits only): ")
	if err != nil {
		return err
	}
	if _, err := c.svc.Client(taxID); err == nil {
		c.out.Failure(failureMessage(client.ErrDuplicateClient))
		return nil
	}
	req := dto.RegisterClient{TaxID: taxID}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter the full name: ", &req.Name},
		{"Enter the birth date (dd-mm-yyyy): ", &req.BirthDate},
		{"Enter the address (street, number - district - city/state): ", &req.Address},
	}
	for _, f := range fields {
		if *f.dst, err = c.prompt(f.label); err != nil {
			return err
		}
	}
	if _, err := c.svc.RegisterClient(ctx, req); err != nil {
		return c.report(err)
	}
	c.out.Success("Client created successfully!")
	return nil
}

func (c *Console) newAccount(ctx context.Context) error {
	taxID, err := c.prompt("Enter the client's tax ID: ")
	if err != nil {
		return err
	}
	acc, err := c.svc.OpenAccount(ctx, taxID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			c.out.Failure("Client not found, account creation flow ended!")
			return nil
		}
		return c.report(err)
	}
	c.out.Success(fmt.Sprintf("Account %d created successfully!", acc.Number))
	return nil
}

func (c *Console) listAccounts(_ context.Context) error {
	c.printAccounts(c.svc.ListAccounts())
	return nil
}
