package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Boost.StoreDriver)
	assert.Equal(t, 3, cfg.Boost.DailyBoostLimit)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.Interval)
	assert.Equal(t, 3*time.Second, cfg.Ranking.CacheTTL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOST_STORE_DRIVER", "memory")
	t.Setenv("BOOST_DAILY_LIMIT", "5")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PRICING_COUNTRY_FACTORS", "IN:0.5,BR:0.7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Boost.StoreDriver)
	assert.Equal(t, 5, cfg.Boost.DailyBoostLimit)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "0.5", cfg.Pricing.CountryFactors["IN"])
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("BOOST_STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestPricingFromEnv(t *testing.T) {
	t.Setenv("PRICING_COUNTRY_FACTORS", "US:1.0")
	cfg, err := Load()
	require.NoError(t, err)

	calc, err := cfg.Pricing.Calculator()
	require.NoError(t, err)
	q, err := calc.Compute(
		domain.Profile{Completeness: 80, Rating: 4.5, Country: "US", Role: domain.RoleVerified},
		domain.Package{BasePrice: 12000},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(9234), q.Price)
}

func TestPricingRejectsBadFactor(t *testing.T) {
	t.Setenv("PRICING_ROLE_FACTORS", "regular:abc")
	cfg, err := Load()
	require.NoError(t, err)
	_, err = cfg.Pricing.Calculator()
	assert.Error(t, err)
}
