package projection

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository/boltstore"
)

func names(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

var catalog = []domain.Product{
	{Name: "Solitaire", Category: "rings", Metal: "Gold", Rating: 4.1, Reviews: 12},
	{Name: "Choker", Category: "necklaces", Metal: "Gold"},
	{Name: "Band", Category: "rings", Metal: "Silver", Description: "plain polished band", Rating: 4.8, Reviews: 3},
	{Name: "Pendant", Category: "necklaces", Metal: "Silver"},
	{Name: "Eternity", Category: "rings", Metal: "gold", Rating: 3.9, Reviews: 40},
}

func TestCatalogByCategory_DefaultSortByName(t *testing.T) {
	got := CatalogByCategory(catalog, "rings", Query{})
	assert.Equal(t, []string{"Band", "Eternity", "Solitaire"}, names(got))
}

func TestCatalogByCategory_Filters(t *testing.T) {
	assert.Equal(t, []string{"Solitaire"}, names(CatalogByCategory(catalog, "rings", Query{Metal: "Gold"})))
	assert.Equal(t, []string{"Eternity"}, names(CatalogByCategory(catalog, "rings", Query{Metal: "gold"})))
	assert.Empty(t, CatalogByCategory(catalog, "rings", Query{Metal: "GOLD"}), "metal matches exactly")
	assert.Equal(t, []string{"Band"}, names(CatalogByCategory(catalog, "rings", Query{Search: "POLISHED"})))
	assert.Equal(t, []string{"Solitaire"}, names(CatalogByCategory(catalog, "rings", Query{Search: "soli"})))
	assert.Empty(t, CatalogByCategory(catalog, "Rings", Query{}))
	assert.Empty(t, CatalogByCategory(nil, "rings", Query{}))
}

func TestCatalogByCategory_Sorts(t *testing.T) {
	assert.Equal(t, []string{"Band", "Solitaire", "Eternity"}, names(CatalogByCategory(catalog, "rings", Query{Sort: SortRating})))
	assert.Equal(t, []string{"Eternity", "Solitaire", "Band"}, names(CatalogByCategory(catalog, "rings", Query{Sort: ParseSort("Reviews")})))
	assert.Equal(t, SortName, ParseSort("price"))
}

func TestStoryFeed_FirstPerCategory(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Category: "rings", Image: "a.jpg"},
		{ID: "2", Category: "rings", Image: "b.jpg"},
		{ID: "3", Category: "necklaces", Image: "c.jpg"},
	}
	want := []domain.Story{
		{ID: "rings", Image: "a.jpg", Title: "Rings", Link: "/catalog/rings", Category: "rings"},
		{ID: "necklaces", Image: "c.jpg", Title: "Necklaces", Link: "/catalog/necklaces", Category: "necklaces"},
	}
	if diff := cmp.Diff(want, StoryFeed(products)); diff != "" {
		t.Errorf("StoryFeed mismatch (-want +got):\n%s", diff)
	}
}

func TestStoryFeed_SkipsMissingImageAndCategory(t *testing.T) {
	products := []domain.Product{
		{Category: "gold chains", Image: ""},
		{Category: "", Image: "x.jpg"},
		{Category: "gold chains", Image: "d.jpg"},
	}
	stories := StoryFeed(products)
	require.Len(t, stories, 1)
	assert.Equal(t, "gold-chains", stories[0].ID)
	assert.Equal(t, "Gold Chains", stories[0].Title)
	assert.Equal(t, "/catalog/gold%20chains", stories[0].Link)
	assert.Equal(t, "d.jpg", stories[0].Image)
}

func TestRateSnapshot_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	got := RateSnapshot(nil, now)
	assert.Equal(t, 6250.0, got.Gold)
	assert.Equal(t, 78.0, got.Silver)
	assert.Equal(t, got.Gold, got.PreviousGold)
	assert.Equal(t, got.Silver, got.PreviousSilver)
	assert.Equal(t, now, got.LastUpdated)
}

func TestService_ReadsThroughStore(t *testing.T) {
	store, err := boltstore.Open(filepath.Join(t.TempDir(), "p.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	svc := NewService(store)
	first, err := svc.Rates(ctx)
	require.NoError(t, err)
	second, err := svc.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 6250.0, first.Gold)

	_, err = store.Rates().UpsertSingleton(ctx, domain.RateKey, 6300, 80)
	require.NoError(t, err)
	a, err := svc.Rates(ctx)
	require.NoError(t, err)
	b, err := svc.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 6300.0, a.Gold)

	older := &domain.Product{Name: "Old", Category: "rings", Image: "old.jpg"}
	require.NoError(t, store.Products().Create(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := &domain.Product{Name: "New", Category: "rings", Image: "new.jpg"}
	require.NoError(t, store.Products().Create(ctx, newer))

	stories, err := svc.Stories(ctx)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "new.jpg", stories[0].Image)

	rings, err := svc.Catalog(ctx, "rings", Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"New", "Old"}, names(rings))
}
