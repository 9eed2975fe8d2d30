package service

import (
	"fmt"
	"time"

	"github.com/meschbach/formrelay/internal/junk/telemetry"
	"github.com/meschbach/formrelay/internal/relay"
	"github.com/meschbach/formrelay/internal/web"
	"github.com/meschbach/go-junk-bucket/pkg"
	"github.com/meschbach/go-junk-bucket/pkg/files"
	"github.com/meschbach/go-junk-bucket/pkg/observability"
)

type Config struct {
	Telemetry observability.Config `json:"-"`
	Web       WebConfig            `json:"web"`
	Relay     RelayConfig          `json:"relay"`
	Storage   StorageConfig        `json:"storage"`
}

type WebConfig struct {
	//Address is where the browser facing HTTP listener binds.
	Address string `json:"address"`
	//StaticRoot is the directory static files are served from.
	StaticRoot string `json:"static-root"`
	//AssetRoot holds the index, message and error views.
	AssetRoot string `json:"asset-root"`
	//RelayAddress is dialed to hand submissions to the relay listener.
	RelayAddress string `json:"relay-address"`
	MaxBody      int64  `json:"max-body"`
}

type RelayConfig struct {
	Address    string `json:"address"`
	MaxPayload int64  `json:"max-payload"`
	//ReadTimeout bounds how long a single connection may take to deliver its payload, as a Go duration.
	ReadTimeout string `json:"read-timeout"`
}

type StorageConfig struct {
	Path string `json:"path"`
}

func DefaultConfig() Config {
	return Config{
		Telemetry: telemetry.DefaultConfig("formrelay"),
		Web: WebConfig{
			Address:      "0.0.0.0:5000",
			StaticRoot:   ".",
			AssetRoot:    "front-init",
			RelayAddress: "localhost:3000",
			MaxBody:      web.DefaultMaxBody,
		},
		Relay: RelayConfig{
			Address:     "0.0.0.0:3000",
			MaxPayload:  relay.DefaultMaxPayload,
			ReadTimeout: relay.DefaultReadTimeout.String(),
		},
		Storage: StorageConfig{
			Path: "front-init/storage/data.json",
		},
	}
}

// LoadFile overlays the JSON document at path onto the configuration.
func (c *Config) LoadFile(path string) error {
	return files.ParseJSONFile(path, c)
}

// LoadEnv overlays FORMRELAY_* environment variables onto the configuration.
func (c *Config) LoadEnv() *Config {
	c.Web.Address = pkg.EnvOrDefault("FORMRELAY_HTTP_ADDRESS", c.Web.Address)
	c.Web.StaticRoot = pkg.EnvOrDefault("FORMRELAY_STATIC_ROOT", c.Web.StaticRoot)
	c.Web.AssetRoot = pkg.EnvOrDefault("FORMRELAY_ASSET_ROOT", c.Web.AssetRoot)
	c.Web.RelayAddress = pkg.EnvOrDefault("FORMRELAY_RELAY_DIAL", c.Web.RelayAddress)
	c.Relay.Address = pkg.EnvOrDefault("FORMRELAY_RELAY_ADDRESS", c.Relay.Address)
	c.Relay.ReadTimeout = pkg.EnvOrDefault("FORMRELAY_RELAY_READ_TIMEOUT", c.Relay.ReadTimeout)
	c.Storage.Path = pkg.EnvOrDefault("FORMRELAY_STORAGE", c.Storage.Path)
	return c
}

func (c *Config) relayReadTimeout() (time.Duration, error) {
	if c.Relay.ReadTimeout == "" {
		return relay.DefaultReadTimeout, nil
	}
	timeout, err := time.ParseDuration(c.Relay.ReadTimeout)
	if err != nil {
		return 0, fmt.Errorf("relay read-timeout %q: %w", c.Relay.ReadTimeout, err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("relay read-timeout %q must be positive", c.Relay.ReadTimeout)
	}
	return timeout, nil
}
