package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/committer"
)

// SpannerCodec maps one document kind onto a Spanner table.
type SpannerCodec[T any] struct {
	Table     string
	KeyColumn string
	// Columns is the read column list; Decode receives rows in this order.
	Columns []string
	// FieldColumns maps queryable schema fields to column names.
	FieldColumns map[string]string
	// Encode returns a value for every column. Absent values are nil.
	Encode func(*T) map[string]interface{}
	Decode func(*spanner.Row) (*T, error)
}

// Spanner is a collection stored in one Spanner table. Writes go through a
// committer plan so every write is a single atomic transaction.
type Spanner[T any] struct {
	client    *spanner.Client
	committer *committer.Adapter
	schema    Schema[T]
	codec     SpannerCodec[T]
	clock     clock.Clock
}

func NewSpanner[T any](client *spanner.Client, schema Schema[T], codec SpannerCodec[T], clk clock.Clock) (*Spanner[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	if codec.Table == "" || codec.Encode == nil || codec.Decode == nil || len(codec.Columns) == 0 {
		return nil, fmt.Errorf("docstore: incomplete spanner codec for %q", schema.Name)
	}
	return &Spanner[T]{
		client:    client,
		committer: committer.NewAdapter(client),
		schema:    schema,
		codec:     codec,
		clock:     clk,
	}, nil
}

func (s *Spanner[T]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(s.codec.Columns, ", "), s.codec.Table)
}

func (s *Spanner[T]) orderBy() string {
	return " ORDER BY " + s.codec.KeyColumn
}

func (s *Spanner[T]) FindByID(ctx context.Context, id string) (*T, error) {
	docs, err := s.query(ctx, spanner.Statement{
		SQL:    s.selectSQL() + " WHERE " + s.codec.KeyColumn + " = @id",
		Params: map[string]interface{}{"id": id},
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

func (s *Spanner[T]) FindFirstBy(ctx context.Context, field, value string) (*T, error) {
	stmt, err := s.fieldStatement(field, value)
	if err != nil {
		return nil, err
	}
	stmt.SQL += s.orderBy() + " LIMIT 1"
	docs, err := s.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

func (s *Spanner[T]) FindAllBy(ctx context.Context, field, value string) ([]*T, error) {
	stmt, err := s.fieldStatement(field, value)
	if err != nil {
		return nil, err
	}
	stmt.SQL += s.orderBy()
	return s.query(ctx, stmt)
}

func (s *Spanner[T]) FindAll(ctx context.Context) ([]*T, error) {
	return s.query(ctx, spanner.Statement{SQL: s.selectSQL() + s.orderBy()})
}

func (s *Spanner[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	prepared := s.schema.prepare(doc, s.clock.Now())
	m := s.mutation(spanner.Insert, prepared)

	if err := s.committer.Apply(ctx, committer.NewPlan(m)); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%s/%s: %w", s.schema.Name, s.schema.ID(prepared), ErrDuplicateKey)
		}
		return nil, fmt.Errorf("docstore: %s insert: %w", s.schema.Name, err)
	}
	return prepared, nil
}

// Save writes every column, so an existing row is fully replaced.
func (s *Spanner[T]) Save(ctx context.Context, doc *T) (*T, error) {
	if s.schema.ID(doc) == "" {
		return s.Insert(ctx, doc)
	}
	prepared := s.schema.prepare(doc, s.clock.Now())
	m := s.mutation(spanner.InsertOrUpdate, prepared)

	if err := s.committer.Apply(ctx, committer.NewPlan(m)); err != nil {
		return nil, fmt.Errorf("docstore: %s save: %w", s.schema.Name, err)
	}
	return prepared, nil
}

func (s *Spanner[T]) DeleteByID(ctx context.Context, id string) error {
	plan := committer.NewPlan(spanner.Delete(s.codec.Table, spanner.Key{id}))
	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("docstore: %s delete %s: %w", s.schema.Name, id, err)
	}
	return nil
}

func (s *Spanner[T]) Count(ctx context.Context) (int64, error) {
	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT COUNT(*) FROM " + s.codec.Table})
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("docstore: %s count: %w", s.schema.Name, err)
	}
	var n int64
	if err := row.Column(0, &n); err != nil {
		return 0, fmt.Errorf("docstore: %s count: %w", s.schema.Name, err)
	}
	return n, nil
}

func (s *Spanner[T]) Ping(ctx context.Context) error {
	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	_, err := iter.Next()
	return err
}

func (s *Spanner[T]) fieldStatement(field, value string) (spanner.Statement, error) {
	if _, err := s.schema.field(field); err != nil {
		return spanner.Statement{}, err
	}
	col, ok := s.codec.FieldColumns[field]
	if !ok {
		return spanner.Statement{}, fmt.Errorf("%s.%s has no column: %w", s.schema.Name, field, ErrUnknownField)
	}
	return spanner.Statement{
		SQL:    s.selectSQL() + " WHERE " + col + " = @value",
		Params: map[string]interface{}{"value": value},
	}, nil
}

func (s *Spanner[T]) query(ctx context.Context, stmt spanner.Statement) ([]*T, error) {
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*T, 0)
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("docstore: %s query: %w", s.schema.Name, err)
		}
		doc, err := s.codec.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("docstore: %s decode: %w", s.schema.Name, err)
		}
		out = append(out, doc)
	}
}

type mutationFunc func(table string, cols []string, vals []interface{}) *spanner.Mutation

func (s *Spanner[T]) mutation(build mutationFunc, doc *T) *spanner.Mutation {
	values := s.codec.Encode(doc)
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for _, col := range s.codec.Columns {
		v, ok := values[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return build(s.codec.Table, cols, vals)
}
