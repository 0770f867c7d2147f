package contracts

import (
	"context"

	"github.com/murkotick/catalog-service/internal/app/item/domain"
)

// ItemStore is the persistence surface the item service depends on.
// Missing documents are reported as docstore.ErrNotFound.
type ItemStore interface {
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	FindFirstBy(ctx context.Context, field, value string) (*domain.Item, error)
	FindAllBy(ctx context.Context, field, value string) ([]*domain.Item, error)
	FindAll(ctx context.Context) ([]*domain.Item, error)
	Insert(ctx context.Context, it *domain.Item) (*domain.Item, error)
	Save(ctx context.Context, it *domain.Item) (*domain.Item, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
