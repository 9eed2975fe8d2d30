package restful

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// respondString responds on the given response with the status code and text body.  If an error occurs while responding
// it is journaled on the active span.
func respondString(ctx context.Context, writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(status)
	if _, err := writer.Write([]byte(body)); err != nil {
		span := trace.SpanFromContext(ctx)
		span.AddEvent("failed to write response")
		span.RecordError(err)
	}
}

// Bytes responds with status, the content type and body as given.
func Bytes(writer http.ResponseWriter, request *http.Request, status int, contentType string, body []byte) {
	writer.Header().Set("Content-Type", contentType)
	writer.WriteHeader(status)
	if _, err := writer.Write(body); err != nil {
		span := trace.SpanFromContext(request.Context())
		span.AddEvent("failed to write response")
		span.RecordError(err)
	}
}
