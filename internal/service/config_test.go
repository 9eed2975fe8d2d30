package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "0.0.0.0:5000", cfg.Web.Address)
	assert.Equal(t, "0.0.0.0:3000", cfg.Relay.Address)
	assert.Equal(t, "localhost:3000", cfg.Web.RelayAddress)
	assert.Equal(t, "front-init/storage/data.json", cfg.Storage.Path)
	assert.Equal(t, "front-init", cfg.Web.AssetRoot)
	assert.NotEmpty(t, cfg.Telemetry.Exporter, "telemetry must start without further setup")
	assert.NotEmpty(t, cfg.Telemetry.ServiceName)

	timeout, err := cfg.relayReadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestConfigLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formrelay.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "web": {"address": "127.0.0.1:8080"},
  "relay": {"read-timeout": "250ms"},
  "storage": {"path": "/var/lib/formrelay/data.json"}
}`), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, "127.0.0.1:8080", cfg.Web.Address)
	assert.Equal(t, "front-init", cfg.Web.AssetRoot, "unset properties keep their defaults")
	assert.Equal(t, "/var/lib/formrelay/data.json", cfg.Storage.Path)

	timeout, err := cfg.relayReadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, timeout)
}

func TestConfigLoadEnv(t *testing.T) {
	t.Setenv("FORMRELAY_HTTP_ADDRESS", "127.0.0.1:5001")
	t.Setenv("FORMRELAY_RELAY_ADDRESS", "127.0.0.1:3001")
	t.Setenv("FORMRELAY_RELAY_DIAL", "127.0.0.1:3001")
	t.Setenv("FORMRELAY_STORAGE", "elsewhere.json")

	cfg := DefaultConfig()
	cfg.LoadEnv()
	assert.Equal(t, "127.0.0.1:5001", cfg.Web.Address)
	assert.Equal(t, "127.0.0.1:3001", cfg.Relay.Address)
	assert.Equal(t, "127.0.0.1:3001", cfg.Web.RelayAddress)
	assert.Equal(t, "elsewhere.json", cfg.Storage.Path)
	assert.Equal(t, ".", cfg.Web.StaticRoot)
}

func TestConfigInvalidReadTimeout(t *testing.T) {
	for _, value := range []string{"soon", "-1s", "0s"} {
		cfg := DefaultConfig()
		cfg.Relay.ReadTimeout = value
		_, _, err := NewSupervisor(cfg)
		assert.Error(t, err, value)
	}
}
