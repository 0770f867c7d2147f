package dto

import (
	"time"

	"github.com/murkotick/catalog-service/internal/pkg/validator"
)

// Account is the JSON shape exchanged with clients.
type Account struct {
	ID         string     `json:"id,omitempty"`
	Name       *string    `json:"name,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
}

var accountRules = []validator.Rule[*Account]{
	validator.Required("name", func(a *Account) *string { return a.Name }, 3, 255),
}

func (a *Account) Validate() []validator.Violation {
	return validator.Validate(a, accountRules)
}
