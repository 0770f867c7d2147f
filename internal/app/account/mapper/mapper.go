package mapper

import (
	"github.com/murkotick/catalog-service/internal/app/account/domain"
	"github.com/murkotick/catalog-service/internal/app/account/dto"
)

func ToEntity(in *dto.Account) *domain.Account {
	if in == nil {
		return nil
	}
	return &domain.Account{
		ID:         in.ID,
		Name:       in.Name,
		CreatedAt:  in.CreatedAt,
		ModifiedAt: in.ModifiedAt,
	}
}

func ToTransfer(in *domain.Account) *dto.Account {
	if in == nil {
		return nil
	}
	return &dto.Account{
		ID:         in.ID,
		Name:       in.Name,
		CreatedAt:  in.CreatedAt,
		ModifiedAt: in.ModifiedAt,
	}
}

func ToTransfers(in []*domain.Account) []*dto.Account {
	out := make([]*dto.Account, 0, len(in))
	for _, a := range in {
		out = append(out, ToTransfer(a))
	}
	return out
}
