package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-service/internal/pkg/clock"
)

type note struct {
	ID         string     `json:"id"`
	Title      *string    `json:"title,omitempty"`
	Tag        *string    `json:"tag,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

func strPtr(s string) *string { return &s }

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func noteSchema() Schema[note] {
	return Schema[note]{
		Name:  "notes",
		ID:    func(n *note) string { return n.ID },
		SetID: func(n *note, id string) { n.ID = id },
		Fields: map[string]func(*note) (string, bool){
			"title": func(n *note) (string, bool) {
				if n.Title == nil {
					return "", false
				}
				return *n.Title, true
			},
			"tag": func(n *note) (string, bool) {
				if n.Tag == nil {
					return "", false
				}
				return *n.Tag, true
			},
		},
		Audit: func(n *note, now time.Time) {
			if n.CreatedAt == nil {
				created := now
				n.CreatedAt = &created
			}
			modified := now
			n.ModifiedAt = &modified
		},
	}
}

// runCollectionContract exercises behaviour every Collection implementation
// must share. newCollection must return an empty collection on each call.
func runCollectionContract(t *testing.T, newCollection func(t *testing.T, clk clock.Clock) Collection[note]) {
	ctx := context.Background()

	t.Run("insert assigns id and stamps timestamps", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		in := &note{Title: strPtr("first")}
		out, err := c.Insert(ctx, in)
		require.NoError(t, err)

		assert.NotEmpty(t, out.ID)
		require.NotNil(t, out.CreatedAt)
		require.NotNil(t, out.ModifiedAt)
		assert.True(t, out.CreatedAt.Equal(epoch))
		assert.True(t, out.ModifiedAt.Equal(epoch))

		assert.Empty(t, in.ID, "caller's document must not be modified")
		assert.Nil(t, in.CreatedAt)

		got, err := c.FindByID(ctx, out.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", *got.Title)
		assert.True(t, got.CreatedAt.Equal(epoch))
	})

	t.Run("find by id on missing document", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		_, err := c.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("insert with taken id fails", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		_, err := c.Insert(ctx, &note{ID: "fixed", Title: strPtr("a")})
		require.NoError(t, err)

		_, err = c.Insert(ctx, &note{ID: "fixed", Title: strPtr("b")})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("save replaces document and keeps created at", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		c := newCollection(t, clk)

		created, err := c.Insert(ctx, &note{Title: strPtr("draft"), Tag: strPtr("x")})
		require.NoError(t, err)

		clk.Advance(time.Minute)
		replacement := &note{ID: created.ID, Title: strPtr("final"), CreatedAt: created.CreatedAt}
		saved, err := c.Save(ctx, replacement)
		require.NoError(t, err)

		got, err := c.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", *got.Title)
		assert.Nil(t, got.Tag, "save is a full replace")
		assert.True(t, got.CreatedAt.Equal(epoch))
		assert.True(t, got.ModifiedAt.Equal(epoch.Add(time.Minute)))
		assert.True(t, saved.ModifiedAt.Equal(epoch.Add(time.Minute)))
	})

	t.Run("save without id inserts", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		saved, err := c.Save(ctx, &note{Title: strPtr("new")})
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)

		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("field queries", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		for _, n := range []*note{
			{Title: strPtr("one"), Tag: strPtr("red")},
			{Title: strPtr("two"), Tag: strPtr("blue")},
			{Title: strPtr("three"), Tag: strPtr("red")},
			{Title: strPtr("four")},
		} {
			_, err := c.Insert(ctx, n)
			require.NoError(t, err)
		}

		red, err := c.FindAllBy(ctx, "tag", "red")
		require.NoError(t, err)
		assert.Len(t, red, 2)

		none, err := c.FindAllBy(ctx, "tag", "green")
		require.NoError(t, err)
		assert.Empty(t, none)

		first, err := c.FindFirstBy(ctx, "title", "two")
		require.NoError(t, err)
		assert.Equal(t, "blue", *first.Tag)

		_, err = c.FindFirstBy(ctx, "title", "five")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = c.FindAllBy(ctx, "color", "red")
		assert.ErrorIs(t, err, ErrUnknownField)

		all, err := c.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("delete", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		a, err := c.Insert(ctx, &note{Title: strPtr("a")})
		require.NoError(t, err)
		_, err = c.Insert(ctx, &note{Title: strPtr("b")})
		require.NoError(t, err)

		require.NoError(t, c.DeleteByID(ctx, a.ID))
		require.NoError(t, c.DeleteByID(ctx, a.ID), "deleting twice is not an error")

		_, err = c.FindByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("empty collection", func(t *testing.T) {
		c := newCollection(t, clock.NewFake(epoch))

		all, err := c.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		n, err := c.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		assert.NoError(t, c.Ping(ctx))
	})
}
