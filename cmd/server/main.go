package main

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	accountservice "github.com/murkotick/catalog-service/internal/app/account/service"
	itemservice "github.com/murkotick/catalog-service/internal/app/item/service"
	"github.com/murkotick/catalog-service/internal/app/seed"
	"github.com/murkotick/catalog-service/internal/config"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/logger"
	"github.com/murkotick/catalog-service/internal/pkg/metrics"
	"github.com/murkotick/catalog-service/internal/pkg/telemetry"
	grpchealth "github.com/murkotick/catalog-service/internal/transport/grpc/health"
	"github.com/murkotick/catalog-service/internal/transport/rest"
	"github.com/murkotick/catalog-service/internal/transport/rest/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}
	base, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	log := base.WithField("service", "catalog")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Info("shutdown signal received")
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server failed")
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Entry) error {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	st, err := openStores(ctx, cfg.Store, clock.RealClock{}, m, log)
	if err != nil {
		return err
	}
	defer st.close()

	items := itemservice.NewService(st.items, log)
	accounts := accountservice.NewService(st.accounts, log)

	if cfg.Seed.Enabled {
		if err := seed.New(items, accounts, log).Run(ctx); err != nil {
			return err
		}
	}

	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Tracing.ServiceName,
			Environment:  cfg.Tracing.Environment,
			OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		})
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				log.WithError(err).Warn("telemetry shutdown")
			}
		}()
		log.WithField("endpoint", cfg.Tracing.OTLPEndpoint).Info("tracing enabled")
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, time.Minute)
		defer limiter.Stop()
	}

	httpSrv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: rest.NewRouter(rest.Deps{
			Items:    items,
			Accounts: accounts,
			Pingers: map[string]rest.Pinger{
				"items":    st.items,
				"accounts": st.accounts,
			},
			Metrics:     m,
			Tracing:     cfg.Tracing.Enabled,
			RateLimiter: limiter,
			Log:         log,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	checker := grpchealth.NewChecker(cfg.Store.HealthInterval, log, st.items, st.accounts)
	grpcSrv := grpc.NewServer()
	checker.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", httpSrv.Addr).Info("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.WithField("addr", lis.Addr().String()).Info("gRPC health server listening")
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error { return checker.Run(gctx) })

	g.Go(func() error {
		<-gctx.Done()
		checker.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}
		return nil
	})

	return g.Wait()
}
