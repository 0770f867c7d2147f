package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/murkotick/catalog-service/internal/app/account/dto"
)

func TestRoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	name := "Mike"

	for _, in := range []*dto.Account{
		{},
		{Name: &name},
		{ID: "a1", Name: &name, CreatedAt: &now, ModifiedAt: &now},
	} {
		assert.Equal(t, in, ToTransfer(ToEntity(in)))
	}
	assert.Nil(t, ToEntity(nil))
	assert.Nil(t, ToTransfer(nil))
	assert.Empty(t, ToTransfers(nil))
}
