package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	accountdomain "github.com/murkotick/catalog-service/internal/app/account/domain"
	accountrepo "github.com/murkotick/catalog-service/internal/app/account/repo"
	itemdomain "github.com/murkotick/catalog-service/internal/app/item/domain"
	itemrepo "github.com/murkotick/catalog-service/internal/app/item/repo"
	"github.com/murkotick/catalog-service/internal/config"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
	"github.com/murkotick/catalog-service/internal/pkg/metrics"
)

type stores struct {
	items    docstore.Collection[itemdomain.Item]
	accounts docstore.Collection[accountdomain.Account]
	closers  []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores builds both collections on the configured driver. When m is
// non-nil every collection reports to it.
func openStores(ctx context.Context, cfg config.StoreConfig, clk clock.Clock, m *metrics.Metrics, log *logrus.Entry) (*stores, error) {
	st := &stores{}
	var err error

	switch cfg.Driver {
	case config.DriverMemory:
		if st.items, err = itemrepo.NewMemory(clk); err != nil {
			return nil, err
		}
		if st.accounts, err = accountrepo.NewMemory(clk); err != nil {
			return nil, err
		}

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		st.closers = append(st.closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			st.close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		if st.items, err = itemrepo.NewRedis(client, cfg.RedisPrefix, clk); err != nil {
			st.close()
			return nil, err
		}
		if st.accounts, err = accountrepo.NewRedis(client, cfg.RedisPrefix, clk); err != nil {
			st.close()
			return nil, err
		}

	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("spanner.NewClient: %w", err)
		}
		st.closers = append(st.closers, client.Close)
		if st.items, err = itemrepo.NewSpanner(client, clk); err != nil {
			st.close()
			return nil, err
		}
		if st.accounts, err = accountrepo.NewSpanner(client, clk); err != nil {
			st.close()
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}

	if m != nil {
		st.items = docstore.Instrument(st.items, itemrepo.CollectionName, m)
		st.accounts = docstore.Instrument(st.accounts, accountrepo.CollectionName, m)
	}

	log.WithField("driver", cfg.Driver).Info("document store ready")
	return st, nil
}
