package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// HTTPObserver records finished requests.
type HTTPObserver interface {
	TrackInFlight() func()
	ObserveHTTP(method, route, status string, d time.Duration)
}

// Metrics instruments matched routes. It must be installed with
// mux.Router.Use so the route template is known; the template, not the raw
// path, is used as the label.
func Metrics(obs HTTPObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)
			if route == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			done := obs.TrackInFlight()
			defer done()

			start := time.Now()
			sw := wrapWriter(w)
			next.ServeHTTP(sw, r)

			obs.ObserveHTTP(r.Method, route, strconv.Itoa(sw.status), time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
