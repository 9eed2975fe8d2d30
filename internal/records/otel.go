package records

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/meschbach/formrelay/internal/records")
