// Package validator checks string fields against a declared rule table.
package validator

import (
	"fmt"
	"unicode/utf8"
)

const MsgRequired = "must not be null"

// Violation is one failed constraint.
type Violation struct {
	Field   string
	Message string
}

// Rule constrains one string field. Length bounds apply only when the value
// is present; zero Max means unbounded.
type Rule[T any] struct {
	Field    string
	Value    func(T) *string
	Required bool
	Min, Max int
}

// Required declares a mandatory field with length bounds.
func Required[T any](field string, value func(T) *string, min, max int) Rule[T] {
	return Rule[T]{Field: field, Value: value, Required: true, Min: min, Max: max}
}

// Optional declares a field that may be absent but must respect the bounds
// when present.
func Optional[T any](field string, value func(T) *string, min, max int) Rule[T] {
	return Rule[T]{Field: field, Value: value, Min: min, Max: max}
}

func (r Rule[T]) check(v T) (Violation, bool) {
	s := r.Value(v)
	if s == nil {
		if r.Required {
			return Violation{Field: r.Field, Message: MsgRequired}, false
		}
		return Violation{}, true
	}
	n := utf8.RuneCountInString(*s)
	if n < r.Min || (r.Max > 0 && n > r.Max) {
		return Violation{Field: r.Field, Message: SizeMessage(r.Min, r.Max)}, false
	}
	return Violation{}, true
}

// SizeMessage is the message reported for a length violation.
func SizeMessage(min, max int) string {
	return fmt.Sprintf("size must be between %d and %d", min, max)
}

// Validate evaluates every rule in declaration order and returns all
// violations. A nil result means v is valid.
func Validate[T any](v T, rules []Rule[T]) []Violation {
	var out []Violation
	for _, r := range rules {
		if violation, ok := r.check(v); !ok {
			out = append(out, violation)
		}
	}
	return out
}
