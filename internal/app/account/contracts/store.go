package contracts

import (
	"context"

	"github.com/murkotick/catalog-service/internal/app/account/domain"
)

// AccountStore is the persistence surface the account service depends on.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindFirstBy(ctx context.Context, field, value string) (*domain.Account, error)
	FindAllBy(ctx context.Context, field, value string) ([]*domain.Account, error)
	FindAll(ctx context.Context) ([]*domain.Account, error)
	Insert(ctx context.Context, a *domain.Account) (*domain.Account, error)
	Save(ctx context.Context, a *domain.Account) (*domain.Account, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
