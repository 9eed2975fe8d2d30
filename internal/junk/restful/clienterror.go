package restful

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ClientError responds 400, or 413 when the request body exceeded an http.MaxBytesReader limit.
func ClientError(writer http.ResponseWriter, request *http.Request, problem error) {
	ctx := request.Context()
	span := trace.SpanFromContext(ctx)
	span.SetStatus(codes.Error, problem.Error())
	span.RecordError(problem)
	slog.DebugContext(ctx, "client error", "method", request.Method, "path", request.URL.Path, "err", problem)

	var tooLarge *http.MaxBytesError
	if errors.As(problem, &tooLarge) {
		respondString(ctx, writer, http.StatusRequestEntityTooLarge, "Request entity too large")
		return
	}
	respondString(ctx, writer, http.StatusBadRequest, "Client error")
}
