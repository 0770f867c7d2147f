package health

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name reported for the catalog API. The empty name tracks the
// server as a whole.
const Service = "catalog.v1.Catalog"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker keeps the standard gRPC health service in sync with the backing
// store.
type Checker struct {
	srv      *grpchealth.Server
	pingers  []Pinger
	interval time.Duration
	log      *logrus.Entry
}

func NewChecker(interval time.Duration, log *logrus.Entry, pingers ...Pinger) *Checker {
	srv := grpchealth.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{
		srv:      srv,
		pingers:  pingers,
		interval: interval,
		log:      log.WithField("component", "grpc_health"),
	}
}

func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.srv)
}

// Server exposes the underlying health server, mostly for tests.
func (c *Checker) Server() *grpchealth.Server { return c.srv }

// Check pings every store once and publishes the result.
func (c *Checker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	for _, p := range c.pingers {
		if err := p.Ping(ctx); err != nil {
			c.log.WithError(err).Warn("store ping failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
			break
		}
	}
	c.srv.SetServingStatus("", status)
	c.srv.SetServingStatus(Service, status)
	return status
}

// Run checks immediately and then on every tick until ctx is done.
func (c *Checker) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		checkCtx, cancel := context.WithTimeout(ctx, c.interval)
		c.Check(checkCtx)
		cancel()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Shutdown marks everything NOT_SERVING and ignores later updates.
func (c *Checker) Shutdown() {
	c.srv.Shutdown()
}
