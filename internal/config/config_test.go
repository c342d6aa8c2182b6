package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("gateway_baseurl", "http://localhost:9000/weather")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/weather", cfg.GatewayBaseUrl)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "London", cfg.DefaultCity)
	assert.False(t, cfg.DisableRedis)
}

func TestLoad_RequiresGatewayBaseUrl(t *testing.T) {
	t.Setenv("gateway_baseurl", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("gateway_baseurl", "http://gw")
	t.Setenv("fetch_timeout", "3s")
	t.Setenv("disable_redis", "true")
	t.Setenv("gateway_rate_rps", "2.5")
	t.Setenv("gateway_rate_burst", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.DisableRedis)
	assert.Equal(t, 2.5, cfg.GatewayRateRPS)
	assert.Equal(t, 5, cfg.GatewayBurst)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("gateway_baseurl", "http://gw")
	t.Setenv("fetch_timeout", "soon")

	_, err := Load()
	require.Error(t, err)
}
