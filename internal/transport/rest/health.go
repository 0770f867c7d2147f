package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	LivePath  = "/health/live"
	ReadyPath = "/health/ready"

	readyTimeout = 2 * time.Second
)

// Pinger is anything the readiness probe should reach before reporting ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	pingers map[string]Pinger
	log     *logrus.Entry
}

func (h *healthHandler) Register(r *mux.Router) {
	r.HandleFunc(LivePath, h.live).Methods(http.MethodGet)
	r.HandleFunc(ReadyPath, h.ready).Methods(http.MethodGet)
}

func (h *healthHandler) live(w http.ResponseWriter, _ *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *healthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.pingers))
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.log.WithError(err).WithField("check", name).Warn("readiness check failed")
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	_ = writeJSON(w, status, checks)
}
