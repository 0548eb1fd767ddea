package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.TaxRate.Equal(decimal.RequireFromString("0.0825")))
	assert.True(t, cfg.DeliveryFee.Equal(decimal.RequireFromString("2.99")))
	assert.Equal(t, 45*time.Minute, cfg.DeliveryETA)
	assert.Equal(t, PaymentSimulated, cfg.PaymentMode)
	assert.Equal(t, MealClockCity, cfg.MealClock)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("DELIVERY_FEE", "0")
	t.Setenv("DELIVERY_ETA", "30m")
	t.Setenv("PAYMENT_MODE", "GRPC")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.1", cfg.TaxRate.String())
	assert.True(t, cfg.DeliveryFee.IsZero())
	assert.Equal(t, 30*time.Minute, cfg.DeliveryETA)
	assert.Equal(t, PaymentGRPC, cfg.PaymentMode)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		key, value string
	}{
		"tax rate not a number": {"TAX_RATE", "abc"},
		"negative fee":          {"DELIVERY_FEE", "-1"},
		"bad duration":          {"DELIVERY_ETA", "soon"},
		"unknown payment mode":  {"PAYMENT_MODE", "paypal"},
		"unknown meal clock":    {"MEAL_CLOCK", "moon"},
		"bad bool":              {"RUN_MIGRATIONS", "maybe"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
