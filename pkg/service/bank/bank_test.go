package bank_test

import (
	"context"
	"os"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/minibank/infra/eventbus"
	infrarepo "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/client"
	"github.com/amirasaad/minibank/pkg/domain/events"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/service/bank"
	"github.com/amirasaad/minibank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.SilenceLogs()
	os.Exit(m.Run())
}

type fixture struct {
	svc *bank.Service
	bus *infraeventbus.MemoryEventBus
}

func newFixture(t *testing.T, rules *config.Bank) fixture {
	t.Helper()
	svc, bus := testutils.NewBankService(t, rules)
	return fixture{svc: svc, bus: bus}
}

var registerReq = testutils.ClientRequest

func eventTypes(bus *infraeventbus.MemoryEventBus) []string {
	var out []string
	for _, e := range bus.Published() {
		out = append(out, e.Type())
	}
	return out
}

func TestRegisterClient(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	c, err := f.svc.RegisterClient(ctx, registerReq(" 111 "))
	require.NoError(t, err)
	assert.Equal(t, "111", c.TaxID)

	_, err = f.svc.RegisterClient(ctx, registerReq("111"))
	assert.ErrorIs(t, err, client.ErrDuplicateClient)
	assert.Len(t, f.svc.Clients(), 1)

	assert.Equal(t, []string{events.EventTypeClientRegistered.String()}, eventTypes(f.bus))
}

func TestRegisterClientValidation(t *testing.T) {
	t.Parallel()

	tests := map[string]func(*dto.RegisterClient){
		"missing name":    func(r *dto.RegisterClient) { r.Name = "  " },
		"letters in id":   func(r *dto.RegisterClient) { r.TaxID = "12a" },
		"signed id":       func(r *dto.RegisterClient) { r.TaxID = "-12" },
		"plus sign id":    func(r *dto.RegisterClient) { r.TaxID = "+34" },
		"fractional id":   func(r *dto.RegisterClient) { r.TaxID = "1.5" },
		"missing id":      func(r *dto.RegisterClient) { r.TaxID = "" },
		"bad birth date":  func(r *dto.RegisterClient) { r.BirthDate = "1990-02-01" },
		"missing address": func(r *dto.RegisterClient) { r.Address = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			req := registerReq("111")
			mutate(&req)
			_, err := f.svc.RegisterClient(context.Background(), req)
			assert.ErrorIs(t, err, client.ErrInvalidClientData)
			assert.Empty(t, f.svc.Clients())
			assert.Empty(t, f.bus.Published())
		})
	}
}

func TestOpenAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &config.Bank{Branch: "0042", WithdrawLimit: 300, MaxWithdrawals: 2, CurrencySymbol: "R$"})
	ctx := context.Background()

	_, err := f.svc.OpenAccount(ctx, "999")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
	assert.Empty(t, f.svc.Accounts())

	_, err = f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	_, err = f.svc.RegisterClient(ctx, registerReq("222"))
	require.NoError(t, err)

	a1, err := f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)
	a2, err := f.svc.OpenAccount(ctx, "222")
	require.NoError(t, err)
	a3, err := f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, []int{a1.Number, a2.Number, a3.Number})
	assert.Equal(t, "0042", a1.Branch)
	assert.Equal(t, account.TypeChecking, a1.Type)
	assert.Equal(t, 300.0, a1.Limit())
	assert.Equal(t, 2, a1.MaxWithdrawals())
	assert.Equal(t, "111", a1.ClientID)

	owned, err := f.svc.ClientAccounts("111")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Same(t, a1, owned[0])
	assert.Same(t, a3, owned[1])
	assert.Len(t, f.svc.Accounts(), 3)
}

func TestDepositAndWithdrawScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	acc, err := f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)

	_, err = f.svc.Deposit(ctx, "111", acc.Number, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, acc.Balance())

	for range 3 {
		_, err = f.svc.Withdraw(ctx, "111", acc.Number, 100)
		require.NoError(t, err)
	}
	assert.Equal(t, 200.0, acc.Balance())
	assert.Equal(t, 4, acc.History().Len())
	assert.Equal(t, 3, acc.WithdrawalCount())

	_, err = f.svc.Withdraw(ctx, "111", acc.Number, 50)
	assert.ErrorIs(t, err, account.ErrWithdrawalCountExceeded)
	assert.Equal(t, 200.0, acc.Balance())

	st, err := f.svc.Statement("111", acc.Number)
	require.NoError(t, err)
	require.Len(t, st.Lines, 4)
	assert.Equal(t, account.KindDeposit, st.Lines[0].Kind)
	assert.Equal(t, 500.0, st.Lines[0].Amount)
	assert.Equal(t, account.KindWithdrawal, st.Lines[3].Kind)
	assert.Equal(t, 200.0, st.Balance)
	assert.Equal(t, "Ana Souza", st.Holder)

	types := eventTypes(f.bus)
	assert.Equal(t, events.EventTypeTransactionRejected.String(), types[len(types)-1])
	last := f.bus.Published()[len(types)-1].(events.TransactionRejected)
	assert.Equal(t, "Withdrawal", last.Kind)
	assert.Contains(t, last.Reason, "maximum number of withdrawals exceeded")
}

func TestTransactionLookupErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Deposit(ctx, "999", 1, 10)
	assert.ErrorIs(t, err, client.ErrClientNotFound)

	_, err = f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	_, err = f.svc.Deposit(ctx, "111", 1, 10)
	assert.ErrorIs(t, err, client.ErrNoAccounts)

	_, err = f.svc.RegisterClient(ctx, registerReq("222"))
	require.NoError(t, err)
	other, err := f.svc.OpenAccount(ctx, "222")
	require.NoError(t, err)
	_, err = f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)

	// Client 111 cannot reach the account of client 222 through the service.
	_, err = f.svc.Withdraw(ctx, "111", other.Number, 10)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	_, err = f.svc.Statement("111", other.Number)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestRejectionsLeaveBalance(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	acc, err := f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)
	_, err = f.svc.Deposit(ctx, "111", acc.Number, 1000)
	require.NoError(t, err)

	tests := []struct {
		name   string
		amount float64
		want   error
	}{
		{"zero", 0, account.ErrInvalidAmount},
		{"negative", -10, account.ErrInvalidAmount},
		{"overdraw", 1000.01, account.ErrInsufficientFunds},
		{"over limit", 600, account.ErrLimitExceeded},
	}
	for _, tc := range tests {
		_, err := f.svc.Withdraw(ctx, "111", acc.Number, tc.amount)
		assert.ErrorIs(t, err, tc.want, tc.name)
		assert.Equal(t, 1000.0, acc.Balance(), tc.name)
	}
	_, err = f.svc.Deposit(ctx, "111", acc.Number, -1)
	assert.ErrorIs(t, err, account.ErrInvalidAmount)
	assert.Equal(t, 1, acc.History().Len())
}

func TestStatementPeriodFromRules(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &config.Bank{Branch: "0001", WithdrawLimit: 500, MaxWithdrawals: 1, StatementPeriod: time.Hour})
	ctx := context.Background()
	_, err := f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	acc, err := f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, acc.StatementPeriod())
}

func TestEventsEmitted(t *testing.T) {
	t.Parallel()

	bus := new(testutils.MockBus)
	bus.On("Emit", mock.Anything, mock.AnythingOfType("events.ClientRegistered")).Return(nil).Once()
	bus.On("Emit", mock.Anything, mock.AnythingOfType("events.AccountOpened")).Return(nil).Once()
	bus.On("Emit", mock.Anything, mock.MatchedBy(func(e events.DepositCompleted) bool {
		return e.Amount == 75 && e.Balance == 75 && e.AccountNumber == 1 && e.TaxID == "111"
	})).Return(nil).Once()
	bus.On("Emit", mock.Anything, mock.AnythingOfType("events.WithdrawalCompleted")).Return(nil).Once()

	svc := bank.New(bus, infrarepo.NewClientStore(), infrarepo.NewAccountStore(), nil, nil)
	ctx := context.Background()
	_, err := svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	_, err = svc.OpenAccount(ctx, "111")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, "111", 1, 75)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "111", 1, 25)
	require.NoError(t, err)

	bus.AssertExpectations(t)
}

func TestListAccounts(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	assert.Empty(t, f.svc.ListAccounts())

	_, err := f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)
	_, err = f.svc.OpenAccount(ctx, "111")
	require.NoError(t, err)
	_, err = f.svc.Deposit(ctx, "111", 1, 12.5)
	require.NoError(t, err)

	got := f.svc.ListAccounts()
	require.Len(t, got, 1)
	assert.Equal(t, dto.AccountSummary{Branch: "0001", Number: 1, Holder: "Ana Souza", Balance: 12.5}, got[0])
}

func TestClose(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.RegisterClient(ctx, registerReq("111"))
	require.NoError(t, err)

	f.svc.Close()
	f.svc.Close()

	_, err = f.svc.RegisterClient(ctx, registerReq("222"))
	assert.ErrorIs(t, err, bank.ErrSessionClosed)
	_, err = f.svc.OpenAccount(ctx, "111")
	assert.ErrorIs(t, err, bank.ErrSessionClosed)
	_, err = f.svc.Deposit(ctx, "111", 1, 1)
	assert.ErrorIs(t, err, bank.ErrSessionClosed)
	assert.Len(t, f.svc.Clients(), 1)
}
