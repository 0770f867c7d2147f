package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/catalog-service/internal/app/item/contracts"
	"github.com/murkotick/catalog-service/internal/app/item/domain"
	"github.com/murkotick/catalog-service/internal/app/item/dto"
	"github.com/murkotick/catalog-service/internal/app/item/mapper"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
)

// Service orchestrates item reads and writes. Lookups that find nothing
// return a nil item and a nil error.
type Service struct {
	store contracts.ItemStore
	log   *logrus.Entry
}

func NewService(store contracts.ItemStore, log *logrus.Entry) *Service {
	return &Service{store: store, log: log.WithField("component", "item_service")}
}

func (s *Service) List(ctx context.Context) ([]*dto.Item, error) {
	items, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return mapper.ToTransfers(items), nil
}

// FindFirstByName returns one item with exactly this name. Which one is
// returned when several match is up to the store.
func (s *Service) FindFirstByName(ctx context.Context, name string) (*dto.Item, error) {
	it, err := s.store.FindFirstBy(ctx, domain.FieldName, name)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by name: %w", err)
	}
	return mapper.ToTransfer(it), nil
}

func (s *Service) FindByCategory(ctx context.Context, category string) ([]*dto.Item, error) {
	items, err := s.store.FindAllBy(ctx, domain.FieldCategory, category)
	if err != nil {
		return nil, fmt.Errorf("find items by category: %w", err)
	}
	return mapper.ToTransfers(items), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*dto.Item, error) {
	it, err := s.load(ctx, id)
	if err != nil || it == nil {
		return nil, err
	}
	return mapper.ToTransfer(it), nil
}

// Save persists a new item. Identifier and timestamps supplied by the
// caller are ignored; the store assigns them.
func (s *Service) Save(ctx context.Context, in *dto.Item) (*dto.Item, error) {
	it := mapper.ToEntity(in)
	it.ID = ""
	it.CreatedAt = nil
	it.ModifiedAt = nil

	saved, err := s.store.Insert(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.log.WithField("item_id", saved.ID).Debug("item created")
	return mapper.ToTransfer(saved), nil
}

// Update replaces every mutable field of the stored item with in.
func (s *Service) Update(ctx context.Context, id string, in *dto.Item) (*dto.Item, error) {
	existing, err := s.load(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Replace(mapper.ToEntity(in))

	saved, err := s.store.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, err)
	}
	s.log.WithField("item_id", id).Debug("item replaced")
	return mapper.ToTransfer(saved), nil
}

// Patch copies the fields present on in onto the stored item.
func (s *Service) Patch(ctx context.Context, id string, in *dto.Item) (*dto.Item, error) {
	existing, err := s.load(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Merge(mapper.ToEntity(in))

	saved, err := s.store.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("patch item %s: %w", id, err)
	}
	s.log.WithField("item_id", id).Debug("item patched")
	return mapper.ToTransfer(saved), nil
}

// DeleteByID removes the item without checking that it exists.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	s.log.WithField("item_id", id).Debug("item deleted")
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Item, error) {
	it, err := s.store.FindByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}
