package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/meschbach/formrelay/internal/junk/restful"
)

type HealthCheckReply struct {
	Ok bool `json:"ok"`
}

func (s *Site) livenessRoute() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		restful.Ok(writer, request, &HealthCheckReply{Ok: true})
	}
}

// readinessRoute reports ready once every view can be found.
func (s *Site) readinessRoute() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		for _, view := range []string{HomeView, MessageView, ErrorView} {
			if _, err := os.Stat(filepath.Join(s.AssetRoot, view)); err != nil {
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(http.StatusServiceUnavailable)
				_, _ = writer.Write([]byte(`{"ok":false}` + "\n"))
				return
			}
		}
		restful.Ok(writer, request, &HealthCheckReply{Ok: true})
	}
}
