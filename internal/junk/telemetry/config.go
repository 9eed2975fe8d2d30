package telemetry

import (
	"context"
	"time"

	"github.com/meschbach/go-junk-bucket/pkg"
	"github.com/meschbach/go-junk-bucket/pkg/observability"
)

// DefaultConfig names the service from OTEL_SERVICE_NAME when set, otherwise serviceName.
func DefaultConfig(serviceName string) observability.Config {
	return observability.DefaultConfig(pkg.EnvOrDefault("OTEL_SERVICE_NAME", serviceName))
}

// ShutdownFunc flushes and stops the exporters started by Start.
type ShutdownFunc func() error

// Start brings up the exporters described by cfg.  The returned function must be called once the process is done.
func Start(ctx context.Context, cfg observability.Config) (ShutdownFunc, error) {
	component, err := cfg.Start(ctx)
	if err != nil {
		return nil, err
	}
	return func() error {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return component.ShutdownGracefully(shutdownCtx)
	}, nil
}
