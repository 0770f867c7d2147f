package m_item

import (
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/murkotick/catalog-service/internal/app/item/domain"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
)

// BuildValues maps an item onto every column of the items table. Absent
// values become typed NULLs so a write always replaces the whole row.
func BuildValues(it *domain.Item) map[string]interface{} {
	m := map[string]interface{}{
		ColItemID:         it.ID,
		ColName:           nullString(it.Name),
		ColCategory:       nullString(it.Category),
		ColCode:           nullString(it.Code),
		ColQuantityOnHand: spanner.NullInt64{},
		ColPrice:          spanner.NullNumeric{},
		ColCreatedAt:      nullTime(it.CreatedAt),
		ColModifiedAt:     nullTime(it.ModifiedAt),
	}
	if it.QuantityOnHand != nil {
		m[ColQuantityOnHand] = spanner.NullInt64{Int64: int64(*it.QuantityOnHand), Valid: true}
	}
	if it.Price != nil {
		m[ColPrice] = spanner.NullNumeric{Numeric: *it.Price.Rat(), Valid: true}
	}
	return m
}

// FromRow decodes a row read with Columns.
func FromRow(row *spanner.Row) (*domain.Item, error) {
	var (
		id                    string
		name, category, code  spanner.NullString
		qty                   spanner.NullInt64
		price                 spanner.NullNumeric
		createdAt, modifiedAt spanner.NullTime
	)
	if err := row.Columns(&id, &name, &category, &code, &qty, &price, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}

	it := &domain.Item{
		ID:         id,
		Name:       stringPtr(name),
		Category:   stringPtr(category),
		Code:       stringPtr(code),
		CreatedAt:  timePtr(createdAt),
		ModifiedAt: timePtr(modifiedAt),
	}
	if qty.Valid {
		q := int(qty.Int64)
		it.QuantityOnHand = &q
	}
	if price.Valid {
		// NUMERIC has a scale of 9
		d, err := decimal.NewFromString(price.Numeric.FloatString(9))
		if err != nil {
			return nil, fmt.Errorf("m_item: price: %w", err)
		}
		it.Price = &d
	}
	return it, nil
}

// Codec binds the items table to the item document schema.
func Codec() docstore.SpannerCodec[domain.Item] {
	return docstore.SpannerCodec[domain.Item]{
		Table:     TableName,
		KeyColumn: ColItemID,
		Columns:   Columns,
		FieldColumns: map[string]string{
			domain.FieldName:     ColName,
			domain.FieldCategory: ColCategory,
		},
		Encode: BuildValues,
		Decode: FromRow,
	}
}

func nullString(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

func nullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: t.UTC(), Valid: true}
}

func stringPtr(s spanner.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.StringVal
	return &v
}

func timePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
