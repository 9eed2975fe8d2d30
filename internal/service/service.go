package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/meschbach/formrelay/internal/junk/telemetry"
	"github.com/meschbach/formrelay/internal/records"
	"github.com/meschbach/formrelay/internal/relay"
	"github.com/meschbach/formrelay/internal/web"
	"github.com/thejerf/suture/v4"
)

// NewSupervisor wires the record store to the relay and web listeners under one supervisor.  Nothing runs until the
// supervisor is served.
func NewSupervisor(cfg Config) (*suture.Supervisor, *records.FileStore, error) {
	readTimeout, err := cfg.relayReadTimeout()
	if err != nil {
		return nil, nil, err
	}
	store := records.NewFileStore(cfg.Storage.Path)

	app := suture.New("formrelay", suture.Spec{
		EventHook: func(e suture.Event) {
			slog.Warn("supervisor event", "event", e.String())
		},
	})
	app.Add(&relay.Listener{
		Address:     cfg.Relay.Address,
		MaxPayload:  cfg.Relay.MaxPayload,
		ReadTimeout: readTimeout,
		Store:       store,
	})
	app.Add(&web.Listener{
		Address: cfg.Web.Address,
		Site: &web.Site{
			StaticRoot: cfg.Web.StaticRoot,
			AssetRoot:  cfg.Web.AssetRoot,
			MaxBody:    cfg.Web.MaxBody,
			Relay:      relay.NewClient(cfg.Web.RelayAddress),
			Hidden:     []string{cfg.Storage.Path},
		},
	})
	return app, store, nil
}

// Serve runs both listeners until ctx is done or the supervisor gives up, such as when a listener cannot bind.
func Serve(ctx context.Context, cfg Config) error {
	slog.InfoContext(ctx, "starting formrelay",
		"web", cfg.Web.Address,
		"relay", cfg.Relay.Address,
		"storage", cfg.Storage.Path,
		"assets", cfg.Web.AssetRoot)

	shutdown, err := telemetry.Start(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(); err != nil {
			slog.Warn("telemetry shutdown failed", "err", err)
		}
	}()

	app, _, err := NewSupervisor(cfg)
	if err != nil {
		return err
	}
	appDone := <-app.ServeBackground(ctx)
	if ctx.Err() != nil {
		slog.Info("formrelay stopped")
		return nil
	}
	if appDone == nil {
		return errors.New("supervisor stopped unexpectedly")
	}
	return appDone
}
