package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-service/internal/pkg/validator"
)

func ptr[T any](v T) *T { return &v }

func TestItem_Validate(t *testing.T) {
	valid := func() *Item {
		return &Item{Name: ptr("Galaxy Cat"), Category: ptr("Pale Ale"), Code: ptr("12345")}
	}

	tests := []struct {
		name   string
		mutate func(i *Item)
		want   []validator.Violation
	}{
		{name: "valid", mutate: func(i *Item) {}},
		{name: "category optional", mutate: func(i *Item) { i.Category = nil }},
		{
			name:   "empty name",
			mutate: func(i *Item) { i.Name = ptr("") },
			want:   []validator.Violation{{Field: "name", Message: "size must be between 3 and 255"}},
		},
		{
			name:   "missing code",
			mutate: func(i *Item) { i.Code = nil },
			want:   []validator.Violation{{Field: "code", Message: validator.MsgRequired}},
		},
		{
			name: "several fields",
			mutate: func(i *Item) {
				i.Name = nil
				i.Category = ptr(strings.Repeat("c", 300))
				i.Code = ptr("1")
			},
			want: []validator.Violation{
				{Field: "name", Message: validator.MsgRequired},
				{Field: "category", Message: "size must be between 3 and 255"},
				{Field: "code", Message: "size must be between 3 and 255"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := valid()
			tt.mutate(i)
			assert.Equal(t, tt.want, i.Validate())
		})
	}
}

func TestItem_JSONPrice(t *testing.T) {
	var in Item
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Crank","price":14.05,"quantityOnHand":3}`), &in))
	require.NotNil(t, in.Price)
	assert.True(t, in.Price.Equal(decimal.RequireFromString("14.05")))
	assert.Equal(t, 3, *in.QuantityOnHand)

	var fromString Item
	require.NoError(t, json.Unmarshal([]byte(`{"price":"21.37"}`), &fromString))
	assert.True(t, fromString.Price.Equal(decimal.RequireFromString("21.37")))

	out, err := json.Marshal(&Item{ID: "abc", Name: ptr("Crank")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","name":"Crank"}`, string(out))
}
