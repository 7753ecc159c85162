package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "STORE_BACKEND", "DB_NAME", "REQUEST_TIMEOUT", "TAX_RATE", "SHIPPING_FEE", "FREE_SHIPPING_THRESHOLD", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "storefront", cfg.DBName)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "1500", cfg.Pricing.FreeShippingThreshold.String())
	assert.Equal(t, "99", cfg.Pricing.ShippingFee.String())
	assert.Equal(t, "0.18", cfg.Pricing.TaxRate.String())
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TAX_RATE", "0.2")
	t.Setenv("REQUEST_TIMEOUT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "0.2", cfg.Pricing.TaxRate.String())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("GIN_MODE", "")
	t.Setenv("TAX_RATE", "lots")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("TAX_RATE", "")
	t.Setenv("STORE_BACKEND", "postgres")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", BackendMongo)
	t.Setenv("MONGO_URI", "")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	_, err = FromEnv()
	assert.NoError(t, err)

	t.Setenv("GIN_MODE", "verbose")
	_, err = FromEnv()
	assert.Error(t, err)
}
