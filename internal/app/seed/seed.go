// Package seed loads sample data into empty collections at startup.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	accountdto "github.com/murkotick/catalog-service/internal/app/account/dto"
	itemdto "github.com/murkotick/catalog-service/internal/app/item/dto"
)

type ItemSaver interface {
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, in *itemdto.Item) (*itemdto.Item, error)
}

type AccountSaver interface {
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, in *accountdto.Account) (*accountdto.Account, error)
}

// Seeder imports the sample records. Each collection is seeded only when it
// is empty, so running it again is harmless.
type Seeder struct {
	items    ItemSaver
	accounts AccountSaver
	log      *logrus.Entry
}

func New(items ItemSaver, accounts AccountSaver, log *logrus.Entry) *Seeder {
	return &Seeder{items: items, accounts: accounts, log: log.WithField("component", "seed")}
}

// Run seeds items and accounts concurrently.
func (s *Seeder) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.seedItems(ctx) })
	g.Go(func() error { return s.seedAccounts(ctx) })
	return g.Wait()
}

func (s *Seeder) seedItems(ctx context.Context) error {
	n, err := s.items.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	if n > 0 {
		s.log.WithField("count", n).Debug("items present, skipping seed")
		return nil
	}

	for _, it := range SampleItems() {
		if _, err := s.items.Save(ctx, it); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}
	s.log.WithField("count", len(SampleItems())).Info("seeded items")
	return nil
}

func (s *Seeder) seedAccounts(ctx context.Context) error {
	n, err := s.accounts.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if n > 0 {
		s.log.WithField("count", n).Debug("accounts present, skipping seed")
		return nil
	}

	for _, a := range SampleAccounts() {
		if _, err := s.accounts.Save(ctx, a); err != nil {
			return fmt.Errorf("seed accounts: %w", err)
		}
	}
	s.log.WithField("count", len(SampleAccounts())).Info("seeded accounts")
	return nil
}

func SampleItems() []*itemdto.Item {
	item := func(name, category, code, price string, qty int) *itemdto.Item {
		p := decimal.RequireFromString(price)
		return &itemdto.Item{
			Name:           &name,
			Category:       &category,
			Code:           &code,
			QuantityOnHand: &qty,
			Price:          &p,
		}
	}
	return []*itemdto.Item{
		item("Galaxy Cat", "Pale Ale", "12345", "12.99", 1234),
		item("Crank", "Pale Ale", "12345", "14.05", 1234),
		item("Sunshine City", "Ipa", "12345", "21.37", 1234),
	}
}

func SampleAccounts() []*accountdto.Account {
	account := func(name string) *accountdto.Account {
		return &accountdto.Account{Name: &name}
	}
	return []*accountdto.Account{account("Mike"), account("Tom"), account("Bob")}
}
