package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

// Redis stores each document as a JSON string under {<prefix>:<name>}:<id>
// and tracks the ids of a collection in the set {<prefix>:<name>}:ids. The
// hash tag keeps a collection in one cluster slot so writes can run as a
// single script. Field queries scan the collection.
type Redis[T any] struct {
	client redis.UniversalClient
	schema Schema[T]
	clock  clock.Clock
	prefix string
}

// Each write script touches the id set before the document. A script that
// fails on the set has written nothing; SET and DEL on the document cannot
// fail once the set call succeeded.
//
// KEYS[1] document key, KEYS[2] id set; ARGV[1] document, ARGV[2] id.
var (
	insertScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('SADD', KEYS[2], ARGV[2])
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

	saveScript = redis.NewScript(`
redis.call('SADD', KEYS[2], ARGV[2])
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

	// ARGV[1] id.
	deleteScript = redis.NewScript(`
redis.call('SREM', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[1])
return 1
`)
)

func NewRedis[T any](client redis.UniversalClient, prefix string, schema Schema[T], clk clock.Clock) (*Redis[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("docstore: redis client is nil")
	}
	return &Redis[T]{client: client, schema: schema, clock: clk, prefix: prefix}, nil
}

func (r *Redis[T]) docKey(id string) string {
	return fmt.Sprintf("{%s:%s}:%s", r.prefix, r.schema.Name, id)
}

func (r *Redis[T]) idsKey() string {
	return fmt.Sprintf("{%s:%s}:ids", r.prefix, r.schema.Name)
}

func (r *Redis[T]) FindByID(ctx context.Context, id string) (*T, error) {
	raw, err := r.client.Get(ctx, r.docKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: %s get %s: %w", r.schema.Name, id, err)
	}
	return r.decode(raw)
}

func (r *Redis[T]) FindFirstBy(ctx context.Context, field, value string) (*T, error) {
	all, err := r.FindAllBy(ctx, field, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all[0], nil
}

func (r *Redis[T]) FindAllBy(ctx context.Context, field, value string) ([]*T, error) {
	get, err := r.schema.field(field)
	if err != nil {
		return nil, err
	}
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(all))
	for _, doc := range all {
		if r.schema.matches(doc, get, value) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// FindAll returns documents ordered by id.
func (r *Redis[T]) FindAll(ctx context.Context) ([]*T, error) {
	ids, err := r.client.SMembers(ctx, r.idsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("docstore: %s list ids: %w", r.schema.Name, err)
	}
	if len(ids) == 0 {
		return []*T{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("docstore: %s mget: %w", r.schema.Name, err)
	}

	out := make([]*T, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// deleted between SMEMBERS and MGET
			continue
		}
		doc, err := r.decode([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *Redis[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	prepared := r.schema.prepare(doc, r.clock.Now())
	id := r.schema.ID(prepared)

	raw, err := json.Marshal(prepared)
	if err != nil {
		return nil, fmt.Errorf("docstore: %s encode: %w", r.schema.Name, err)
	}

	created, err := insertScript.Run(ctx, r.client, []string{r.docKey(id), r.idsKey()}, raw, id).Int()
	if err != nil {
		return nil, fmt.Errorf("docstore: %s insert %s: %w", r.schema.Name, id, err)
	}
	if created == 0 {
		return nil, fmt.Errorf("%s/%s: %w", r.schema.Name, id, ErrDuplicateKey)
	}
	return r.decode(raw)
}

func (r *Redis[T]) Save(ctx context.Context, doc *T) (*T, error) {
	if r.schema.ID(doc) == "" {
		return r.Insert(ctx, doc)
	}
	prepared := r.schema.prepare(doc, r.clock.Now())
	id := r.schema.ID(prepared)

	raw, err := json.Marshal(prepared)
	if err != nil {
		return nil, fmt.Errorf("docstore: %s encode: %w", r.schema.Name, err)
	}

	if err := saveScript.Run(ctx, r.client, []string{r.docKey(id), r.idsKey()}, raw, id).Err(); err != nil {
		return nil, fmt.Errorf("docstore: %s save %s: %w", r.schema.Name, id, err)
	}
	return r.decode(raw)
}

func (r *Redis[T]) DeleteByID(ctx context.Context, id string) error {
	if err := deleteScript.Run(ctx, r.client, []string{r.docKey(id), r.idsKey()}, id).Err(); err != nil {
		return fmt.Errorf("docstore: %s delete %s: %w", r.schema.Name, id, err)
	}
	return nil
}

func (r *Redis[T]) Count(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, r.idsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("docstore: %s count: %w", r.schema.Name, err)
	}
	return n, nil
}

func (r *Redis[T]) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis[T]) decode(raw []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("docstore: %s decode: %w", r.schema.Name, err)
	}
	return &doc, nil
}
