package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

// Memory keeps documents JSON-encoded in process memory, so callers never
// share state with the stored copy. Listing follows insertion order.
type Memory[T any] struct {
	schema Schema[T]
	clock  clock.Clock

	mu    sync.RWMutex
	docs  map[string][]byte
	order []string
}

func NewMemory[T any](schema Schema[T], clk clock.Clock) (*Memory[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	return &Memory[T]{
		schema: schema,
		clock:  clk,
		docs:   make(map[string][]byte),
	}, nil
}

func (m *Memory[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	raw, ok := m.docs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.decode(raw)
}

func (m *Memory[T]) FindFirstBy(ctx context.Context, field, value string) (*T, error) {
	all, err := m.FindAllBy(ctx, field, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all[0], nil
}

func (m *Memory[T]) FindAllBy(ctx context.Context, field, value string) ([]*T, error) {
	get, err := m.schema.field(field)
	if err != nil {
		return nil, err
	}
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(all))
	for _, doc := range all {
		if m.schema.matches(doc, get, value) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Memory[T]) FindAll(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*T, 0, len(m.order))
	for _, id := range m.order {
		doc, err := m.decode(m.docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (m *Memory[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepared := m.schema.prepare(doc, m.clock.Now())
	id := m.schema.ID(prepared)

	raw, err := json.Marshal(prepared)
	if err != nil {
		return nil, fmt.Errorf("docstore: %s encode: %w", m.schema.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[id]; exists {
		return nil, fmt.Errorf("%s/%s: %w", m.schema.Name, id, ErrDuplicateKey)
	}
	m.docs[id] = raw
	m.order = append(m.order, id)
	return m.decode(raw)
}

func (m *Memory[T]) Save(ctx context.Context, doc *T) (*T, error) {
	if m.schema.ID(doc) == "" {
		return m.Insert(ctx, doc)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepared := m.schema.prepare(doc, m.clock.Now())
	id := m.schema.ID(prepared)

	raw, err := json.Marshal(prepared)
	if err != nil {
		return nil, fmt.Errorf("docstore: %s encode: %w", m.schema.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[id]; !exists {
		m.order = append(m.order, id)
	}
	m.docs[id] = raw
	return m.decode(raw)
}

func (m *Memory[T]) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return nil
	}
	delete(m.docs, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	return nil
}

func (m *Memory[T]) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs)), nil
}

func (m *Memory[T]) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *Memory[T]) decode(raw []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("docstore: %s decode: %w", m.schema.Name, err)
	}
	return &doc, nil
}
