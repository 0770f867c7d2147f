package m_account

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-service/internal/app/account/domain"
	"github.com/murkotick/catalog-service/internal/pkg/docstore"
)

func BuildValues(a *domain.Account) map[string]interface{} {
	m := map[string]interface{}{
		ColAccountID:  a.ID,
		ColName:       spanner.NullString{},
		ColCreatedAt:  spanner.NullTime{},
		ColModifiedAt: spanner.NullTime{},
	}
	if a.Name != nil {
		m[ColName] = spanner.NullString{StringVal: *a.Name, Valid: true}
	}
	if a.CreatedAt != nil {
		m[ColCreatedAt] = spanner.NullTime{Time: a.CreatedAt.UTC(), Valid: true}
	}
	if a.ModifiedAt != nil {
		m[ColModifiedAt] = spanner.NullTime{Time: a.ModifiedAt.UTC(), Valid: true}
	}
	return m
}

func FromRow(row *spanner.Row) (*domain.Account, error) {
	var (
		id                    string
		name                  spanner.NullString
		createdAt, modifiedAt spanner.NullTime
	)
	if err := row.Columns(&id, &name, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}

	a := &domain.Account{ID: id}
	if name.Valid {
		n := name.StringVal
		a.Name = &n
	}
	if createdAt.Valid {
		c := createdAt.Time.UTC()
		a.CreatedAt = &c
	}
	if modifiedAt.Valid {
		m := modifiedAt.Time.UTC()
		a.ModifiedAt = &m
	}
	return a, nil
}

func Codec() docstore.SpannerCodec[domain.Account] {
	return docstore.SpannerCodec[domain.Account]{
		Table:        TableName,
		KeyColumn:    ColAccountID,
		Columns:      Columns,
		FieldColumns: map[string]string{domain.FieldName: ColName},
		Encode:       BuildValues,
		Decode:       FromRow,
	}
}
