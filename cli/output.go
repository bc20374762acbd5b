package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
	"github.com/amirasaad/minibank/pkg/service/bank"
	"github.com/fatih/color"
)

// printer renders user-facing messages.
type printer struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
	heading *color.Color
}

func newPrinter(w io.Writer, colored bool) *printer {
	p := &printer{
		w:       w,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		heading: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.success, p.failure, p.heading} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *printer) Success(msg string) {
	p.success.Fprintf(p.w, "\n=== %s ===\n", msg)
}

func (p *printer) Failure(msg string) {
	p.failure.Fprintf(p.w, "\n@@@ %s @@@\n", msg)
}

func (p *printer) Heading(title string) {
	p.heading.Fprintf(p.w, "\n================ %s ================\n", title)
}

// failureMessages maps domain errors to the text shown to the user. The first
// match in order wins.
var failureMessages = []struct {
	err error
	msg string
}{
	{account.ErrInvalidAmount, "Operation failed! The amount provided is invalid."},
	{account.ErrInsufficientFunds, "Operation failed! You do not have sufficient balance."},
	{account.ErrLimitExceeded, "Operation failed! The withdrawal amount exceeds the limit."},
	{account.ErrWithdrawalCountExceeded, "Operation failed! Maximum number of withdrawals exceeded."},
	{account.ErrAccountNotFound, "Account not found!"},
	{client.ErrClientNotFound, "Client not found!"},
	{client.ErrNoAccounts, "Client has no account!"},
	{client.ErrDuplicateClient, "A client with this tax ID already exists!"},
	{bank.ErrSessionClosed, "Session closed!"},
}

// failureMessage returns the user-facing text for err.
func failureMessage(err error) string {
	for _, m := range failureMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	if errors.Is(err, client.ErrInvalidClientData) {
		return "Invalid client data: " + detail(err, client.ErrInvalidClientData)
	}
	return "Operation failed! " + err.Error()
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
