package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbrdigital/invoice-relay/internal/fbr"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, fbr.SandboxURL, cfg.Gateway.URL)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSeconds)
	assert.False(t, cfg.Gateway.InsecureSkipVerify)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":8081", cfg.Portal.Address)
	assert.Equal(t, "http://localhost:8080", cfg.Portal.RelayURL)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("FBRRELAY_SERVER_ADDRESS", ":9090")
	t.Setenv("FBRRELAY_GATEWAY_TIMEOUT_SECONDS", "10")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 10, cfg.Gateway.TimeoutSeconds)
}

func TestNew_RejectsBadGatewayURL(t *testing.T) {
	t.Setenv("FBRRELAY_GATEWAY_URL", "not a url")

	_, err := New()
	assert.Error(t, err)
}
