package mapper

import (
	"github.com/murkotick/catalog-service/internal/app/item/domain"
	"github.com/murkotick/catalog-service/internal/app/item/dto"
)

// ToEntity converts a transfer object field for field. Nil in, nil out.
func ToEntity(in *dto.Item) *domain.Item {
	if in == nil {
		return nil
	}
	return &domain.Item{
		ID:             in.ID,
		Name:           in.Name,
		Category:       in.Category,
		Code:           in.Code,
		QuantityOnHand: in.QuantityOnHand,
		Price:          in.Price,
		CreatedAt:      in.CreatedAt,
		ModifiedAt:     in.ModifiedAt,
	}
}

// ToTransfer converts an entity field for field. Nil in, nil out.
func ToTransfer(in *domain.Item) *dto.Item {
	if in == nil {
		return nil
	}
	return &dto.Item{
		ID:             in.ID,
		Name:           in.Name,
		Category:       in.Category,
		Code:           in.Code,
		QuantityOnHand: in.QuantityOnHand,
		Price:          in.Price,
		CreatedAt:      in.CreatedAt,
		ModifiedAt:     in.ModifiedAt,
	}
}

func ToTransfers(in []*domain.Item) []*dto.Item {
	out := make([]*dto.Item, 0, len(in))
	for _, it := range in {
		out = append(out, ToTransfer(it))
	}
	return out
}
