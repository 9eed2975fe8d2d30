package web

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/meschbach/formrelay/internal/junk/restful"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// submitRoute relays the raw body of any POST, whatever the path, then sends the browser home.
func (s *Site) submitRoute() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, s.maxBody()))
		if err != nil {
			restful.ClientError(writer, request, err)
			return
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("web.submit.size", len(body)))

		if err := s.Relay.Send(ctx, body); err != nil {
			restful.BadGateway(writer, request, err)
			return
		}
		slog.DebugContext(ctx, "submission relayed", "path", request.URL.Path, "size", len(body))
		http.Redirect(writer, request, "/", http.StatusFound)
	}
}
