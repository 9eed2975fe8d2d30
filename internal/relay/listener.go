package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/meschbach/formrelay/internal/records"
	"github.com/thejerf/suture/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultReadTimeout = 5 * time.Second
	acceptBackoff      = 50 * time.Millisecond
)

// Appender receives every successfully decoded submission.
type Appender interface {
	Append(ctx context.Context, fields records.Submission) (string, error)
}

// Listener accepts relay connections one at a time, fully handling each before accepting the next.
type Listener struct {
	Address     string
	MaxPayload  int64
	ReadTimeout time.Duration
	Store       Appender
}

func (l *Listener) String() string {
	return "relay listener " + l.Address
}

// Serve binds Address and serves until ctx is done.  A bind failure terminates the supervisor.
func (l *Listener) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", l.Address)
	if err != nil {
		return fmt.Errorf("%w: relay bind %s: %w", suture.ErrTerminateSupervisorTree, l.Address, err)
	}
	slog.InfoContext(ctx, "relay listening", "address", listener.Addr().String())
	return l.ServeListener(ctx, listener)
}

// ServeListener runs the accept loop on an already bound listener, closing it when ctx is done.
func (l *Listener) ServeListener(ctx context.Context, listener net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer stop()
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			slog.WarnContext(ctx, "relay accept failed", "err", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(acceptBackoff):
			}
			continue
		}
		l.handle(ctx, conn)
	}
}

func (l *Listener) handle(parent context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	ctx, span := tracer.Start(parent, "relay.handle", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(attribute.String("relay.remote", remote))
	defer func() {
		if err := conn.Close(); err != nil {
			slog.DebugContext(ctx, "relay close failed", "remote", remote, "err", err)
		}
	}()
	slog.InfoContext(ctx, "relay connection accepted", "remote", remote)

	if err := conn.SetReadDeadline(time.Now().Add(l.readTimeout())); err != nil {
		slog.WarnContext(ctx, "relay deadline failed", "remote", remote, "err", recordFailure(span, err))
		return
	}
	payload, err := ReadPayload(conn, l.maxPayload())
	if err != nil {
		slog.WarnContext(ctx, "relay payload dropped", "remote", remote, "err", recordFailure(span, err))
		return
	}
	fields, err := Decode(payload)
	if err != nil {
		slog.WarnContext(ctx, "relay submission dropped", "remote", remote, "err", recordFailure(span, err))
		return
	}
	slog.InfoContext(ctx, "relay submission decoded", "remote", remote, "fields", fields)

	key, err := l.Store.Append(ctx, fields)
	if err != nil {
		recordFailure(span, err)
		var corrupt *records.CorruptError
		if errors.As(err, &corrupt) {
			slog.ErrorContext(ctx, "record store is corrupt, submission dropped", "path", corrupt.Path, "err", err)
		} else {
			slog.WarnContext(ctx, "record store append failed, submission dropped", "err", err)
		}
		return
	}
	span.SetAttributes(attribute.String("records.key", key))
	slog.InfoContext(ctx, "relay submission stored", "remote", remote, "key", key)
}

func (l *Listener) readTimeout() time.Duration {
	if l.ReadTimeout <= 0 {
		return DefaultReadTimeout
	}
	return l.ReadTimeout
}

func (l *Listener) maxPayload() int64 {
	if l.MaxPayload <= 0 {
		return DefaultMaxPayload
	}
	return l.MaxPayload
}
