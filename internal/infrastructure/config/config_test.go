package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "UTC", cfg.ScheduleTZ)
	assert.Equal(t, float64(8), cfg.DefaultTripHours)
	assert.Equal(t, 30*time.Second, cfg.DispatchInterval)
	assert.Equal(t, 100, cfg.DispatchBatchSize)
	assert.Equal(t, float64(1), cfg.SendRatePerSec)
	assert.Equal(t, "termii", cfg.SMSProvider)
	assert.Equal(t, "resend", cfg.EmailProvider)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCHEDULE_TIMEZONE", "Africa/Lagos")
	t.Setenv("DEFAULT_TRIP_DURATION_HOURS", "10.5")
	t.Setenv("DISPATCH_INTERVAL", "15")
	t.Setenv("SMS_PROVIDER", "twilio")
	t.Setenv("JWT_TTL_HOURS", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Africa/Lagos", cfg.ScheduleTZ)
	assert.Equal(t, 10.5, cfg.DefaultTripHours)
	assert.Equal(t, 15*time.Second, cfg.DispatchInterval)
	assert.Equal(t, "twilio", cfg.SMSProvider)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", getEnv("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_STR_MISSING", "fallback"))

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 7))
	t.Setenv("TEST_INT_BAD", "not a number")
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_BAD", 7))

	t.Setenv("TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, getEnvAsFloat("TEST_FLOAT", 1))
}
