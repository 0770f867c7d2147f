// Package docstore provides document collections keyed by a string id.
//
// Every implementation stamps documents through the collection's audit hook
// right before they are written, assigns ids to new documents and reports an
// absent document as ErrNotFound.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("document already exists")
	ErrUnknownField = errors.New("unknown query field")
)

// Collection is the set of primitives the application needs from a store.
type Collection[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	FindFirstBy(ctx context.Context, field, value string) (*T, error)
	FindAllBy(ctx context.Context, field, value string) ([]*T, error)
	FindAll(ctx context.Context) ([]*T, error)
	Insert(ctx context.Context, doc *T) (*T, error)
	Save(ctx context.Context, doc *T) (*T, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Schema describes one kind of document.
type Schema[T any] struct {
	// Name is the collection (table, key namespace) name.
	Name  string
	ID    func(*T) string
	SetID func(*T, string)
	// Fields lists the queryable fields. The accessor reports false when the
	// field is absent on a document.
	Fields map[string]func(*T) (string, bool)
	// Audit runs on every document right before it is persisted.
	Audit func(*T, time.Time)
}

func (s Schema[T]) validate() error {
	if s.Name == "" || s.ID == nil || s.SetID == nil || s.Audit == nil {
		return fmt.Errorf("docstore: incomplete schema %q", s.Name)
	}
	return nil
}

func (s Schema[T]) field(name string) (func(*T) (string, bool), error) {
	get, ok := s.Fields[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", s.Name, name, ErrUnknownField)
	}
	return get, nil
}

// prepare copies doc, assigns an id when missing and applies the audit hook.
// The caller's value is left untouched.
func (s Schema[T]) prepare(doc *T, now time.Time) *T {
	cp := *doc
	if s.ID(&cp) == "" {
		s.SetID(&cp, NewID())
	}
	s.Audit(&cp, now)
	return &cp
}

func (s Schema[T]) matches(doc *T, get func(*T) (string, bool), value string) bool {
	v, ok := get(doc)
	return ok && v == value
}

// NewID returns a fresh document id.
func NewID() string {
	return uuid.New().String()
}
