package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_HOST", "BRAINTREE_ENV", "BRAINTREE_TIMEOUT", "KAFKA_BROKERS", "ORDER_STATUS_POLICY", "CATALOG_CACHE_TTL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "127.0.0.1", cfg.DBHost)
	assert.Equal(t, "sandbox", cfg.BraintreeEnv)
	assert.Equal(t, 30*time.Second, cfg.BraintreeTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "free", cfg.OrderStatusPolicy)
	assert.Equal(t, 60*time.Second, cfg.CatalogCacheTTL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("BRAINTREE_TIMEOUT", "5s")
	t.Setenv("CATALOG_CACHE_TTL", "bogus")

	cfg := LoadConfig()
	assert.Equal(t, "shop:pw@tcp(db:3307)/shop?parseTime=true", cfg.DSN())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.BraintreeTimeout)
	assert.Equal(t, 60*time.Second, cfg.CatalogCacheTTL, "malformed durations fall back")
}
