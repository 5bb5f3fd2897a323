// Package repotest holds the behaviour every repository backend must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

// RunStoreSuite exercises a freshly migrated, empty store
func RunStoreSuite(t *testing.T, store repository.Store) {
	t.Run("products", func(t *testing.T) { testProducts(t, store.Products()) })
	t.Run("slider", func(t *testing.T) { testSlider(t, store.Slider()) })
	t.Run("rates", func(t *testing.T) { testRates(t, store.Rates()) })
}

func testProducts(t *testing.T, repo repository.ProductRepository) {
	ctx := context.Background()

	ring := &domain.Product{Name: "Solitaire Ring", Category: "rings", Price: 15999, Image: "/uploads/1-ring.jpg", Metal: "gold", InStock: true}
	require.NoError(t, repo.Create(ctx, ring))
	require.NotEmpty(t, ring.ID)
	assert.False(t, ring.CreatedAt.IsZero())

	time.Sleep(5 * time.Millisecond)
	chain := &domain.Product{Name: "Rope Chain", Category: "necklaces", Price: 8999, Image: "https://cdn.example.com/chain.jpg", Metal: "silver"}
	require.NoError(t, repo.Create(ctx, chain))

	// a reused identity is rejected, the stored product stays intact
	err := repo.Create(ctx, &domain.Product{ID: ring.ID, Name: "Copy", Category: "rings", Image: "https://cdn.example.com/copy.jpg"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, chain.ID, list[0].ID, "newest product first")
	assert.Equal(t, ring.ID, list[1].ID)

	got, err := repo.Get(ctx, ring.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solitaire Ring", got.Name)
	assert.Equal(t, 15999.0, got.Price)
	assert.True(t, got.InStock)

	// partial update keeps untouched fields
	require.NoError(t, repo.Update(ctx, ring.ID, domain.Fields{domain.FieldName: "Halo Ring", domain.FieldInStock: false}))
	got, err = repo.Get(ctx, ring.ID)
	require.NoError(t, err)
	assert.Equal(t, "Halo Ring", got.Name)
	assert.Equal(t, "rings", got.Category)
	assert.Equal(t, "/uploads/1-ring.jpg", got.Image)
	assert.False(t, got.InStock)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	_, err = repo.Get(ctx, "not-an-id!")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.ErrorIs(t, repo.Delete(ctx, "not-an-id!"), domain.ErrInvalidID)

	require.NoError(t, repo.Delete(ctx, ring.ID))
	_, err = repo.Get(ctx, ring.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ring.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, ring.ID, domain.Fields{domain.FieldName: "x"}), domain.ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testSlider(t *testing.T, repo repository.SliderRepository) {
	ctx := context.Background()

	first := &domain.SliderItem{ID: "slide-a", Image: "/uploads/a.jpg", Title: "Festive", Subtitle: "Up to 20% off making", Link: "/catalog/rings"}
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := &domain.SliderItem{Image: "https://cdn.example.com/b.jpg", Title: "Bridal"}
	require.NoError(t, repo.Create(ctx, second))
	require.NotEmpty(t, second.ID, "identity assigned when absent")

	dup := &domain.SliderItem{ID: "slide-a", Image: "/uploads/other.jpg", Title: "Intruder"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrValidation)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "slide-a", list[0].ID, "insertion order")
	assert.Equal(t, "Festive", list[0].Title)
	assert.Equal(t, "/uploads/a.jpg", list[0].Image)

	require.NoError(t, repo.Update(ctx, "slide-a", domain.Fields{domain.FieldSubtitle: "Flat 25% off"}))
	got, err := repo.Get(ctx, "slide-a")
	require.NoError(t, err)
	assert.Equal(t, "Flat 25% off", got.Subtitle)
	assert.Equal(t, "Festive", got.Title)

	assert.ErrorIs(t, repo.Update(ctx, "missing", domain.Fields{domain.FieldTitle: "x"}), domain.ErrNotFound)
	_, err = repo.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	require.NoError(t, repo.Delete(ctx, "slide-a"))
	assert.ErrorIs(t, repo.Delete(ctx, "slide-a"), domain.ErrNotFound)
}

func testRates(t *testing.T, repo repository.RateRepository) {
	ctx := context.Background()

	_, err := repo.Get(ctx, domain.RateKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first, err := repo.UpsertSingleton(ctx, domain.RateKey, 6250, 78)
	require.NoError(t, err)
	assert.Equal(t, 6250.0, first.PreviousGold)
	assert.Equal(t, 78.0, first.PreviousSilver)

	second, err := repo.UpsertSingleton(ctx, domain.RateKey, 6300, 80)
	require.NoError(t, err)
	assert.Equal(t, 6300.0, second.Gold)
	assert.Equal(t, 80.0, second.Silver)
	assert.Equal(t, 6250.0, second.PreviousGold)
	assert.Equal(t, 78.0, second.PreviousSilver)
	assert.False(t, second.LastUpdated.Before(first.LastUpdated))

	a, err := repo.Get(ctx, domain.RateKey)
	require.NoError(t, err)
	b, err := repo.Get(ctx, domain.RateKey)
	require.NoError(t, err)
	assert.Equal(t, a.Gold, b.Gold)
	assert.Equal(t, a.PreviousSilver, b.PreviousSilver)
	assert.True(t, a.LastUpdated.Equal(b.LastUpdated))
}
