package docstore

import (
	"context"
	"errors"
	"time"
)

// Observer receives one call per store operation.
type Observer interface {
	ObserveStore(collection, op, result string, d time.Duration)
}

// Instrumented reports the outcome and latency of every call on the wrapped
// collection.
type Instrumented[T any] struct {
	next Collection[T]
	name string
	obs  Observer
}

func Instrument[T any](next Collection[T], name string, obs Observer) *Instrumented[T] {
	return &Instrumented[T]{next: next, name: name, obs: obs}
}

func (c *Instrumented[T]) observe(op string, start time.Time, err error) {
	c.obs.ObserveStore(c.name, op, Result(err), time.Since(start))
}

// Result classifies a store error into a metrics label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

func (c *Instrumented[T]) FindByID(ctx context.Context, id string) (*T, error) {
	start := time.Now()
	doc, err := c.next.FindByID(ctx, id)
	c.observe("find_by_id", start, err)
	return doc, err
}

func (c *Instrumented[T]) FindFirstBy(ctx context.Context, field, value string) (*T, error) {
	start := time.Now()
	doc, err := c.next.FindFirstBy(ctx, field, value)
	c.observe("find_first_by_"+field, start, err)
	return doc, err
}

func (c *Instrumented[T]) FindAllBy(ctx context.Context, field, value string) ([]*T, error) {
	start := time.Now()
	docs, err := c.next.FindAllBy(ctx, field, value)
	c.observe("find_all_by_"+field, start, err)
	return docs, err
}

func (c *Instrumented[T]) FindAll(ctx context.Context) ([]*T, error) {
	start := time.Now()
	docs, err := c.next.FindAll(ctx)
	c.observe("find_all", start, err)
	return docs, err
}

func (c *Instrumented[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	start := time.Now()
	out, err := c.next.Insert(ctx, doc)
	c.observe("insert", start, err)
	return out, err
}

func (c *Instrumented[T]) Save(ctx context.Context, doc *T) (*T, error) {
	start := time.Now()
	out, err := c.next.Save(ctx, doc)
	c.observe("save", start, err)
	return out, err
}

func (c *Instrumented[T]) DeleteByID(ctx context.Context, id string) error {
	start := time.Now()
	err := c.next.DeleteByID(ctx, id)
	c.observe("delete", start, err)
	return err
}

func (c *Instrumented[T]) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := c.next.Count(ctx)
	c.observe("count", start, err)
	return n, err
}

func (c *Instrumented[T]) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}
