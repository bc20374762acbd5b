// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"context"
	"io"
	"log"
	"log/slog"
	"testing"

	infraeventbus "github.com/amirasaad/minibank/infra/eventbus"
	infrarepo "github.com/amirasaad/minibank/infra/repository"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain/events"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/eventbus"
	"github.com/amirasaad/minibank/pkg/service/bank"
	"github.com/stretchr/testify/mock"
)

// SilenceLogs discards the default slog and log output. Call it from TestMain.
func SilenceLogs() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
}

// NewBankService returns a session backed by in-memory stores and a memory
// event bus the test can inspect. The session is closed on test cleanup.
func NewBankService(t testing.TB, rules *config.Bank) (*bank.Service, *infraeventbus.MemoryEventBus) {
	t.Helper()
	bus := infraeventbus.NewWithMemory(slog.Default())
	svc := bank.New(bus, infrarepo.NewClientStore(), infrarepo.NewAccountStore(), rules, slog.Default())
	t.Cleanup(svc.Close)
	return svc, bus
}

// ClientRequest returns a valid registration for taxID.
func ClientRequest(taxID string) dto.RegisterClient {
	return dto.RegisterClient{
		TaxID:     taxID,
		Name:      "Ana Souza",
		BirthDate: "01-02-1990",
		Address:   "Rua A, 1 - Centro - Recife/PE",
	}
}

// MockBus is a testify mock of eventbus.Bus.
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Emit(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockBus) Register(eventType events.EventType, h eventbus.HandlerFunc) {
	m.Called(eventType, h)
}

var _ eventbus.Bus = (*MockBus)(nil)
