package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-service/internal/app/account/dto"
	"github.com/murkotick/catalog-service/internal/app/account/repo"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/logger"
)

func ptr(s string) *string { return &s }

var start = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *clock.FakeClock) {
	t.Helper()
	clk := clock.NewFake(start)
	store, err := repo.NewMemory(clk)
	require.NoError(t, err)
	return NewService(store, logger.Discard().WithField("test", t.Name())), clk
}

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, clk := newTestService(t)

	saved, err := svc.Save(ctx, &dto.Account{Name: ptr("Mike")})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.True(t, start.Equal(*saved.CreatedAt))

	got, err := svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mike", *got.Name)

	clk.Advance(time.Minute)
	updated, err := svc.Update(ctx, saved.ID, &dto.Account{Name: ptr("Michael")})
	require.NoError(t, err)
	assert.Equal(t, "Michael", *updated.Name)
	assert.True(t, start.Equal(*updated.CreatedAt))
	assert.True(t, start.Add(time.Minute).Equal(*updated.ModifiedAt))

	clk.Advance(time.Minute)
	patched, err := svc.Patch(ctx, saved.ID, &dto.Account{})
	require.NoError(t, err)
	assert.Equal(t, "Michael", *patched.Name, "empty patch keeps the name")
	assert.True(t, start.Add(2*time.Minute).Equal(*patched.ModifiedAt))

	require.NoError(t, svc.DeleteByID(ctx, saved.ID))
	gone, err := svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUpdateReplacesName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	saved, err := svc.Save(ctx, &dto.Account{Name: ptr("Tom")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, saved.ID, &dto.Account{})
	require.NoError(t, err)
	assert.Nil(t, updated.Name)
}

func TestAbsentAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	got, err := svc.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	updated, err := svc.Update(ctx, "missing", &dto.Account{Name: ptr("Bob")})
	require.NoError(t, err)
	assert.Nil(t, updated)

	patched, err := svc.Patch(ctx, "missing", &dto.Account{Name: ptr("Bob")})
	require.NoError(t, err)
	assert.Nil(t, patched)
}

func TestFindByName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, n := range []string{"Mike", "Tom", "Bob", "Tom"} {
		_, err := svc.Save(ctx, &dto.Account{Name: ptr(n)})
		require.NoError(t, err)
	}

	toms, err := svc.FindByName(ctx, "Tom")
	require.NoError(t, err)
	assert.Len(t, toms, 2)

	nobody, err := svc.FindByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Empty(t, nobody)

	first, err := svc.FindFirstByName(ctx, "Bob")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Bob", *first.Name)

	missing, err := svc.FindFirstByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
