package restful

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func InternalError(writer http.ResponseWriter, request *http.Request, problem error) {
	ctx := request.Context()
	span := trace.SpanFromContext(ctx)
	span.SetStatus(codes.Error, problem.Error())
	span.RecordError(problem)
	slog.ErrorContext(ctx, "internal error", "method", request.Method, "path", request.URL.Path, "err", problem)
	respondString(ctx, writer, http.StatusInternalServerError, "Internal error")
}

// BadGateway reports a dependency of the request could not be reached.
func BadGateway(writer http.ResponseWriter, request *http.Request, problem error) {
	ctx := request.Context()
	span := trace.SpanFromContext(ctx)
	span.SetStatus(codes.Error, problem.Error())
	span.RecordError(problem)
	slog.WarnContext(ctx, "upstream unavailable", "method", request.Method, "path", request.URL.Path, "err", problem)
	respondString(ctx, writer, http.StatusBadGateway, "Relay unavailable")
}
