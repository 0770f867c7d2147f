package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/murkotick/catalog-service/internal/pkg/metrics"
	"github.com/murkotick/catalog-service/internal/transport/rest/middleware"
)

type Deps struct {
	Items    ItemService
	Accounts AccountService
	// Pingers are checked by the readiness probe, keyed by the name reported
	// in its body.
	Pingers map[string]Pinger
	// Metrics is optional; nil disables /metrics and request instrumentation.
	Metrics *metrics.Metrics
	// Tracing uses the global tracer provider and propagator, so telemetry
	// must be initialised before the router is built.
	Tracing     bool
	RateLimiter *middleware.RateLimiter
	Log         *logrus.Entry
}

// NewRouter wires the API, health and metrics routes behind the shared
// middleware stack.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	if d.Tracing {
		r.Use(mux.MiddlewareFunc(middleware.Tracing(otel.GetTracerProvider(), otel.GetTextMapPropagator())))
	}
	if d.Metrics != nil {
		r.Use(mux.MiddlewareFunc(middleware.Metrics(d.Metrics)))
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	NewItemHandler(d.Items, log).Register(r)
	NewAccountHandler(d.Accounts, log).Register(r)
	(&healthHandler{pingers: d.Pingers, log: log.WithField("component", "health")}).Register(r)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
	}
	if d.RateLimiter != nil {
		mws = append(mws, d.RateLimiter.Limit)
	}
	return middleware.Chain(mws...)(r)
}
