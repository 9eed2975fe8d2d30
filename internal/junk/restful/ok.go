package restful

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

func Ok(writer http.ResponseWriter, request *http.Request, entity interface{}) {
	ctx := request.Context()
	header := writer.Header()
	header.Add("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)

	out := json.NewEncoder(writer)
	if err := out.Encode(entity); err != nil {
		span := trace.SpanFromContext(ctx)
		span.AddEvent("failed JSON encoding")
		span.RecordError(err)
	}
}
