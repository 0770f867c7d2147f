package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/catalog-service/internal/app/account/contracts"
	"github.com/murkotick/catalog-service/internal/app/account/domain"
	"github.com/murkotick/catalog-service/internal/app/account/dto"
	"github.com/murkotick/catalog-service/internal/app/account/mapper"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
)

// Service orchestrates account reads and writes. Lookups that find nothing
// return a nil account and a nil error.
type Service struct {
	store contracts.AccountStore
	log   *logrus.Entry
}

func NewService(store contracts.AccountStore, log *logrus.Entry) *Service {
	return &Service{store: store, log: log.WithField("component", "account_service")}
}

func (s *Service) List(ctx context.Context) ([]*dto.Account, error) {
	accounts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return mapper.ToTransfers(accounts), nil
}

func (s *Service) FindFirstByName(ctx context.Context, name string) (*dto.Account, error) {
	a, err := s.store.FindFirstBy(ctx, domain.FieldName, name)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account by name: %w", err)
	}
	return mapper.ToTransfer(a), nil
}

func (s *Service) FindByName(ctx context.Context, name string) ([]*dto.Account, error) {
	accounts, err := s.store.FindAllBy(ctx, domain.FieldName, name)
	if err != nil {
		return nil, fmt.Errorf("find accounts by name: %w", err)
	}
	return mapper.ToTransfers(accounts), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*dto.Account, error) {
	a, err := s.load(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	return mapper.ToTransfer(a), nil
}

func (s *Service) Save(ctx context.Context, in *dto.Account) (*dto.Account, error) {
	a := mapper.ToEntity(in)
	a.ID = ""
	a.CreatedAt = nil
	a.ModifiedAt = nil

	saved, err := s.store.Insert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	s.log.WithField("account_id", saved.ID).Debug("account created")
	return mapper.ToTransfer(saved), nil
}

func (s *Service) Update(ctx context.Context, id string, in *dto.Account) (*dto.Account, error) {
	existing, err := s.load(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Replace(mapper.ToEntity(in))

	saved, err := s.store.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update account %s: %w", id, err)
	}
	s.log.WithField("account_id", id).Debug("account replaced")
	return mapper.ToTransfer(saved), nil
}

func (s *Service) Patch(ctx context.Context, id string, in *dto.Account) (*dto.Account, error) {
	existing, err := s.load(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Merge(mapper.ToEntity(in))

	saved, err := s.store.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("patch account %s: %w", id, err)
	}
	s.log.WithField("account_id", id).Debug("account patched")
	return mapper.ToTransfer(saved), nil
}

func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	s.log.WithField("account_id", id).Debug("account deleted")
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.store.FindByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}
	return a, nil
}
