package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/murkotick/catalog-service/internal/pkg/validator"
)

// Item is the JSON shape exchanged with clients.
type Item struct {
	ID             string           `json:"id,omitempty"`
	Name           *string          `json:"name,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Code           *string          `json:"code,omitempty"`
	QuantityOnHand *int             `json:"quantityOnHand,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	CreatedAt      *time.Time       `json:"createdAt,omitempty"`
	ModifiedAt     *time.Time       `json:"modifiedAt,omitempty"`
}

var itemRules = []validator.Rule[*Item]{
	validator.Required("name", func(i *Item) *string { return i.Name }, 3, 255),
	validator.Optional("category", func(i *Item) *string { return i.Category }, 3, 255),
	validator.Required("code", func(i *Item) *string { return i.Code }, 3, 255),
}

// Validate reports every constraint the item violates, keyed by JSON field name.
func (i *Item) Validate() []validator.Violation {
	return validator.Validate(i, itemRules)
}
