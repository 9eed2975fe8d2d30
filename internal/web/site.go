// Package web is the browser facing listener: three fixed HTML views, static files and form submission relaying.
package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const (
	DefaultMaxBody int64 = 64 * 1024

	HomeView    = "index.html"
	MessageView = "message.html"
	ErrorView   = "error.html"
)

// Relay hands a raw submission body to the record store side.
type Relay interface {
	Send(ctx context.Context, payload []byte) error
}

// Site serves the views from AssetRoot and any other file beneath StaticRoot.  Submissions are handed to Relay.
type Site struct {
	StaticRoot string
	AssetRoot  string
	MaxBody    int64
	Relay      Relay
	//Hidden files are never served as static content, along with any sibling sharing the name as a prefix.
	Hidden []string
}

func (s *Site) Routes() http.Handler {
	root := mux.NewRouter()
	root.Use(otelmux.Middleware("formrelay.web"))
	root.Use(requestLogger)

	ops := root.PathPrefix("/ops").Subrouter()
	ops.HandleFunc("/liveness", s.livenessRoute()).Methods(http.MethodGet)
	ops.HandleFunc("/readiness", s.readinessRoute()).Methods(http.MethodGet)

	root.Path("/").Methods(http.MethodGet, http.MethodHead).HandlerFunc(s.viewRoute(HomeView, http.StatusOK))
	root.Path("/message.html").Methods(http.MethodGet, http.MethodHead).HandlerFunc(s.viewRoute(MessageView, http.StatusOK))
	root.PathPrefix("/").Methods(http.MethodPost).HandlerFunc(s.submitRoute())
	root.PathPrefix("/").Methods(http.MethodGet, http.MethodHead).HandlerFunc(s.staticRoute())
	return root
}

func (s *Site) maxBody() int64 {
	if s.MaxBody <= 0 {
		return DefaultMaxBody
	}
	return s.MaxBody
}
