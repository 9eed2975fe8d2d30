package systest

import (
	"context"
	"os/signal"
	"testing"
	"time"

	"github.com/meschbach/formrelay/internal/junk/telemetry"
	"go.opentelemetry.io/otel"
	"golang.org/x/sys/unix"
)

var tracer = otel.Tracer("formrelay.systest")

// TraceTest runs the remainder of a test under a root span bounded by timeout.  Interrupting the test process cancels
// the context as well.
func TraceTest(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	procCtx, procDone := signal.NotifyContext(context.Background(), unix.SIGTERM, unix.SIGINT)
	shutdown, err := telemetry.Start(procCtx, telemetry.DefaultConfig("formrelay-systest"))
	if err != nil {
		procDone()
		t.Fatalf("starting telemetry: %s", err.Error())
	}

	timedCtx, timedDone := context.WithTimeout(procCtx, timeout)
	ctx, span := tracer.Start(timedCtx, t.Name())
	t.Cleanup(func() {
		span.End()
		timedDone()
		if err := shutdown(); err != nil {
			t.Errorf("telemetry shutdown: %s", err.Error())
		}
		procDone()
	})
	return ctx
}
