package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Queryable document fields.
const (
	FieldName     = "name"
	FieldCategory = "category"
)

// Item is the persisted catalog entry. Optional values are nil when absent.
type Item struct {
	ID             string           `json:"id"`
	Name           *string          `json:"name,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Code           *string          `json:"code,omitempty"`
	QuantityOnHand *int             `json:"quantity_on_hand,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	CreatedAt      *time.Time       `json:"created_at,omitempty"`
	ModifiedAt     *time.Time       `json:"modified_at,omitempty"`
}

// Audit stamps an item about to be written: CreatedAt only the first time,
// ModifiedAt on every write.
func Audit(it *Item, now time.Time) {
	if it.CreatedAt == nil {
		created := now
		it.CreatedAt = &created
	}
	modified := now
	it.ModifiedAt = &modified
}

// Replace overwrites every mutable field with the values of src, absent
// values included. ID and CreatedAt are kept.
func (it *Item) Replace(src *Item) {
	it.Name = src.Name
	it.Category = src.Category
	it.Code = src.Code
	it.QuantityOnHand = src.QuantityOnHand
	it.Price = src.Price
}

// Merge copies the fields present on src and leaves the others unchanged.
func (it *Item) Merge(src *Item) {
	if src.Name != nil {
		it.Name = src.Name
	}
	if src.Category != nil {
		it.Category = src.Category
	}
	if src.Code != nil {
		it.Code = src.Code
	}
	if src.QuantityOnHand != nil {
		it.QuantityOnHand = src.QuantityOnHand
	}
	if src.Price != nil {
		it.Price = src.Price
	}
}
