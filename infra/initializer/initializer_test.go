package initializer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/minibank/pkg/app"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDependencies(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cfg := &config.App{
		Env: "test",
		Log: &config.Log{Level: -4, Format: "logfmt", TimeFormat: "15:04:05", Prefix: "[test]"},
	}
	deps, err := InitializeDependencies(cfg, &buf)
	require.NoError(t, err)
	require.NotNil(t, deps.Logger)
	require.NotNil(t, deps.EventBus)
	require.NotNil(t, deps.Clients)
	require.NotNil(t, deps.Accounts)

	deps.Logger.Info("hello", "tax_id", "111")
	out := buf.String()
	assert.Contains(t, out, "dependencies initialized")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "tax_id=111")
}

func TestInitializeDependenciesRequiresConfig(t *testing.T) {
	_, err := InitializeDependencies(nil, nil)
	assert.Error(t, err)
	_, err = InitializeDependencies(&config.App{}, nil)
	assert.Error(t, err)
}

func TestSetupLoggerLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := setupLogger(&config.Log{Level: 4, Format: "text"}, &buf)
	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestAuditTrailFollowsLogLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	for _, tc := range []struct {
		level int
		want  bool
	}{
		{level: 8, want: false},
		{level: 0, want: true},
	} {
		var buf bytes.Buffer
		cfg := &config.App{
			Log:  &config.Log{Level: tc.level, Format: "logfmt"},
			Bank: &config.Bank{Branch: "0001", WithdrawLimit: 500, MaxWithdrawals: 3},
		}
		deps, err := InitializeDependencies(cfg, &buf)
		require.NoError(t, err)
		a := app.New(deps, cfg)
		_, err = a.BankService.RegisterClient(context.Background(), testutils.ClientRequest("111"))
		require.NoError(t, err)
		a.Close()

		assert.Equal(t, tc.want, bytes.Contains(buf.Bytes(), []byte("client registered")), "level %d", tc.level)
	}
}
