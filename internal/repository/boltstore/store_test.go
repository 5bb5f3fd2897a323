package boltstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository/repotest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "storefront.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_Suite(t *testing.T) {
	repotest.RunStoreSuite(t, openTestStore(t))
}

func TestBoltStore_UpdateWeaklyTypedFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &domain.Product{Name: "Bangle", Category: "bangles", Image: "https://cdn.example.com/bangle.jpg"}
	require.NoError(t, s.Products().Create(ctx, p))

	// form values arrive as strings
	require.NoError(t, s.Products().Update(ctx, p.ID, domain.Fields{
		domain.FieldPrice:   "1299.5",
		domain.FieldInStock: "true",
		"id":                "999",
	}))

	got, err := s.Products().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1299.5, got.Price)
	assert.True(t, got.InStock)
	assert.Equal(t, p.ID, got.ID)
}

func TestBoltStore_ClosedIsUnavailable(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "closed.db"), time.Second)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Products().List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrStoreUnavailable)
}

func TestBoltStore_DropThenMigrate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Slider().Create(ctx, &domain.SliderItem{ID: "s1", Title: "Festive", Image: "https://cdn.example.com/a.jpg"}))
	require.NoError(t, s.Drop(ctx))
	require.NoError(t, s.Migrate(ctx))

	items, err := s.Slider().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBoltStore_CreateKeepsExistingSlide(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	original := &domain.SliderItem{ID: "slide-a", Title: "Original", Image: "/uploads/a.jpg"}
	require.NoError(t, s.Slider().Create(ctx, original))
	err := s.Slider().Create(ctx, &domain.SliderItem{ID: "slide-a", Title: "Intruder", Image: "/uploads/b.jpg"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := s.Slider().Get(ctx, "slide-a")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
	assert.Equal(t, "/uploads/a.jpg", got.Image)
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt))
}
