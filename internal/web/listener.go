package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"
)

const defaultShutdownTimeout = 10 * time.Second

// Listener runs the Site over HTTP until its context is done, then shuts down gracefully.
type Listener struct {
	Address         string
	Site            *Site
	ShutdownTimeout time.Duration
}

func (l *Listener) String() string {
	return "web listener " + l.Address
}

// Serve binds Address and serves until ctx is done.  A bind failure terminates the supervisor.
func (l *Listener) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", l.Address)
	if err != nil {
		return fmt.Errorf("%w: web bind %s: %w", suture.ErrTerminateSupervisorTree, l.Address, err)
	}
	return l.ServeListener(ctx, listener)
}

func (l *Listener) ServeListener(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           l.Site.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listenerResult := make(chan error, 1)
	go func() {
		defer close(listenerResult)
		slog.InfoContext(ctx, "web listening", "address", listener.Addr().String())
		listenerResult <- server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		timeout := l.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, done := context.WithTimeout(context.Background(), timeout)
		defer done()
		shutdownErr := server.Shutdown(shutdownCtx)
		serveErr := <-listenerResult
		if errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = nil
		}
		return errors.Join(ctx.Err(), shutdownErr, serveErr)
	case problem := <-listenerResult:
		return problem
	}
}
