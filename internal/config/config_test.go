package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "slotta_test"

[auth]
jwt_secret = "secret"

[deposit]
stack_cancellation_with_needs_protection = true
long_service_floor = 15.0

[[booking.peak_windows]]
start = "18:00"
end = "20:00"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Deposit.StackCancellationWithNeedsProtection)

	windows, err := cfg.Booking.Windows()
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, types.TimeString("18:00"), windows[0].Start)

	policy := cfg.Deposit.Policy()
	assert.Equal(t, "15", policy.LongServiceFloor.String())
	assert.True(t, policy.StackCancellationWithNeedsProtection)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "from-file"
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Missing jwt secret", `[server]
http_port = 8080`},
		{"Bad timezone", `[auth]
jwt_secret = "s"
[booking]
timezone = "Mars/Olympus"`},
		{"Payments without key", `[auth]
jwt_secret = "s"
[payments]
enabled = true`},
		{"Ceiling above 100 percent", `[auth]
jwt_secret = "s"
[deposit]
ceiling_percent = 120.0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefault_DepositPolicyMatchesCalculatorDefaults(t *testing.T) {
	got := Default().Deposit.Policy()
	want := deposit.DefaultPolicy()

	assert.True(t, want.ShortPercent.Equal(got.ShortPercent))
	assert.True(t, want.MediumPercent.Equal(got.MediumPercent))
	assert.True(t, want.LongPercent.Equal(got.LongPercent))
	assert.True(t, want.NewMultiplier.Equal(got.NewMultiplier))
	assert.True(t, want.CeilingPercent.Equal(got.CeilingPercent))
	assert.True(t, want.LongServiceFloor.Equal(got.LongServiceFloor))
}
