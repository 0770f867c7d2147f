package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Name  *string
	Note  *string
	Label *string
}

func ptr(s string) *string { return &s }

var formRules = []Rule[*form]{
	Required("name", func(f *form) *string { return f.Name }, 3, 255),
	Optional("note", func(f *form) *string { return f.Note }, 3, 255),
	Required("label", func(f *form) *string { return f.Label }, 1, 0),
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   *form
		want []Violation
	}{
		{
			name: "valid",
			in:   &form{Name: ptr("Galaxy Cat"), Label: ptr("x")},
		},
		{
			name: "missing required",
			in:   &form{Label: ptr("x")},
			want: []Violation{{Field: "name", Message: MsgRequired}},
		},
		{
			name: "empty required is a size violation",
			in:   &form{Name: ptr(""), Label: ptr("x")},
			want: []Violation{{Field: "name", Message: "size must be between 3 and 255"}},
		},
		{
			name: "too long",
			in:   &form{Name: ptr(strings.Repeat("a", 256)), Label: ptr("x")},
			want: []Violation{{Field: "name", Message: "size must be between 3 and 255"}},
		},
		{
			name: "bounds are inclusive",
			in:   &form{Name: ptr("abc"), Note: ptr(strings.Repeat("b", 255)), Label: ptr("x")},
		},
		{
			name: "optional present and short",
			in:   &form{Name: ptr("abc"), Note: ptr("no"), Label: ptr("x")},
			want: []Violation{{Field: "note", Message: "size must be between 3 and 255"}},
		},
		{
			name: "runes not bytes",
			in:   &form{Name: ptr("äöü"), Label: ptr("x")},
		},
		{
			name: "every violation reported in declaration order",
			in:   &form{Note: ptr("x")},
			want: []Violation{
				{Field: "name", Message: MsgRequired},
				{Field: "note", Message: "size must be between 3 and 255"},
				{Field: "label", Message: MsgRequired},
			},
		},
		{
			name: "unbounded max",
			in:   &form{Name: ptr("abc"), Label: ptr(strings.Repeat("z", 5000))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.in, formRules))
		})
	}
}
