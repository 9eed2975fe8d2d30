package web

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/meschbach/formrelay/internal/web")
