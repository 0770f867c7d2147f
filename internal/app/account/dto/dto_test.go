package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/murkotick/catalog-service/internal/pkg/validator"
)

func ptr(s string) *string { return &s }

func TestAccount_Validate(t *testing.T) {
	assert.Empty(t, (&Account{Name: ptr("Bob")}).Validate())

	assert.Equal(t,
		[]validator.Violation{{Field: "name", Message: validator.MsgRequired}},
		(&Account{}).Validate())

	assert.Equal(t,
		[]validator.Violation{{Field: "name", Message: "size must be between 3 and 255"}},
		(&Account{Name: ptr(strings.Repeat("x", 256))}).Validate())
}
