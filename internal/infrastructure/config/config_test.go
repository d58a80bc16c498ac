package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/api/v1", cfg.Server.APIPrefix)
	assert.Equal(t, "mock", cfg.Payment.Provider)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.False(t, cfg.Email.Enabled())
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LABPOOL_PAYMENT_PROVIDER", "razorpay")
	t.Setenv("LABPOOL_PAYMENT_KEY_SECRET", "shh")
	t.Setenv("LABPOOL_SERVER_PORT", "9090")

	cfg, err := Load("release")
	require.NoError(t, err)

	assert.Equal(t, "razorpay", cfg.Payment.Provider)
	assert.Equal(t, "shh", cfg.Payment.KeySecret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
}
