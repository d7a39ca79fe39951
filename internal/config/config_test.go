package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTO_CHECKOUT_TIME", "")
	t.Setenv("FACILITY_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 17, cfg.Attendance.CheckoutHour)
	assert.Equal(t, 0, cfg.Attendance.CheckoutMin)
	assert.Equal(t, "Asia/Jakarta", cfg.Attendance.Location.String())
	assert.Contains(t, cfg.DatabaseURL(), ":pw@")
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/hr")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/hr", cfg.DatabaseURL())
}

func TestLoad_InvalidCheckoutTime(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("AUTO_CHECKOUT_TIME", "5pm")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := &Config{JWT: JWTConfig{AccessExpiration: "1h"}}
	assert.Error(t, c.Validate())

	c.Database.Password = "pw"
	assert.Error(t, c.Validate(), "missing secret")

	c.JWT.Secret = "s"
	assert.NoError(t, c.Validate())
}

func TestSlogLevel(t *testing.T) {
	c := &Config{App: AppConfig{LogLevel: "debug"}}
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())

	c.App.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}

func TestGetEnvSlice(t *testing.T) {
	t.Setenv("ORIGINS_TEST", "http://a, http://b,,")
	assert.Equal(t, []string{"http://a", "http://b"}, getEnvSlice("ORIGINS_TEST", nil))
	assert.Equal(t, []string{"x"}, getEnvSlice("ORIGINS_UNSET_TEST", []string{"x"}))
}
