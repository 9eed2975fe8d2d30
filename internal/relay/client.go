package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultDialTimeout = 5 * time.Second

// Client delivers payloads to a relay Listener.
type Client struct {
	Address     string
	DialTimeout time.Duration
}

func NewClient(address string) *Client {
	return &Client{Address: address, DialTimeout: defaultDialTimeout}
}

// Send opens a connection, writes payload and closes the connection to mark the end of the payload.  A dial failure is
// an *UnreachableError.
func (c *Client) Send(parent context.Context, payload []byte) error {
	ctx, span := tracer.Start(parent, "relay.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("relay.address", c.Address), attribute.Int("relay.payload.size", len(payload)))

	dialer := net.Dialer{Timeout: c.DialTimeout}
	if dialer.Timeout == 0 {
		dialer.Timeout = defaultDialTimeout
	}
	conn, err := dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		return recordFailure(span, &UnreachableError{Address: c.Address, Underlying: err})
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return recordFailure(span, errors.Join(err, conn.Close()))
		}
	}

	_, writeErr := conn.Write(payload)
	var halfCloseErr error
	if tcp, ok := conn.(*net.TCPConn); ok && writeErr == nil {
		halfCloseErr = tcp.CloseWrite()
	}
	if err := errors.Join(writeErr, halfCloseErr, conn.Close()); err != nil {
		return recordFailure(span, fmt.Errorf("relay %s: %w", c.Address, err))
	}
	return nil
}
