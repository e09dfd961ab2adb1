package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastewise-pickup-demo/internal/repository"
)

func newLocationFixture(t *testing.T) LocationService {
	t.Helper()
	return NewLocationService(repository.NewLocationRepository(testDB(t)))
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	svc := newLocationFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeeded(ctx))
	require.NoError(t, svc.EnsureSeeded(ctx))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 16)
}

func TestListFiltersByCategory(t *testing.T) {
	svc := newLocationFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureSeeded(ctx))

	plastic, err := svc.List(ctx, "plastik")
	require.NoError(t, err)
	require.NotEmpty(t, plastic)
	for _, loc := range plastic {
		assert.Equal(t, "plastik", loc.Category)
	}

	// "all" and "" both mean no filter
	all, err := svc.List(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 16)

	none, err := svc.List(ctx, "kaca")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListOrderedByID(t *testing.T) {
	svc := newLocationFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureSeeded(ctx))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestGetLocation(t *testing.T) {
	svc := newLocationFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.EnsureSeeded(ctx))

	loc, err := svc.Get(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "Bank Sampah Sejahtera - Jakarta Pusat", loc.Name)
}
