package domain

import "time"

// FieldName is the queryable display-name field.
const FieldName = "name"

// Account is a persisted customer account.
type Account struct {
	ID         string     `json:"id"`
	Name       *string    `json:"name,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

// Audit stamps an account about to be written.
func Audit(a *Account, now time.Time) {
	if a.CreatedAt == nil {
		created := now
		a.CreatedAt = &created
	}
	modified := now
	a.ModifiedAt = &modified
}

// Replace overwrites the mutable fields with src's, absent values included.
func (a *Account) Replace(src *Account) {
	a.Name = src.Name
}

// Merge copies the fields present on src.
func (a *Account) Merge(src *Account) {
	if src.Name != nil {
		a.Name = src.Name
	}
}
