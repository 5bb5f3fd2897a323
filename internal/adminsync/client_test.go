package adminsync

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/adminapi"
	"github.com/shreejewels/storefront/internal/app"
	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/webserver"
)

func newAdminServer(t *testing.T) *HTTPAdminClient {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Web.Secret = "sync-test-secret-0123"
	cfg.Admin.Passphrase = "open"
	cfg.Logger.FileEnable = false

	a := app.NewApplication(&cfg)
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(a.Release)

	adminapi.Init()
	ts := httptest.NewServer(webserver.NewServer(&cfg, a))
	t.Cleanup(ts.Close)
	return NewHTTPAdminClient(ts.URL, ts.Client())
}

func TestHTTPAdminClient_SliderRoundTrip(t *testing.T) {
	client := newAdminServer(t)
	gate := NewGate(client)
	ctx := context.Background()

	require.Error(t, gate.Login(ctx, "wrong"))
	require.NoError(t, gate.Login(ctx, "open"))

	c := NewController[domain.SliderItem](gate, client.Slider())
	require.NoError(t, c.BeginAdd())
	require.NoError(t, c.Edit(func(s *domain.SliderItem) { s.Title = "Bridal" }))
	require.NoError(t, c.SelectFile("bridal.png", []byte("\x89PNG\r\n\x1a\nbody")))
	require.NoError(t, c.Submit(ctx))

	items := c.Items()
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "Bridal", items[0].Title)
	assert.True(t, strings.HasPrefix(items[0].Image, "/uploads/"))

	require.NoError(t, c.BeginEdit(items[0]))
	assert.Equal(t, ModeUpload, c.Mode())
	require.NoError(t, c.PasteLink("https://cdn.example.com/bridal.jpg"))
	require.NoError(t, c.Submit(ctx))
	assert.Equal(t, "https://cdn.example.com/bridal.jpg", c.Items()[0].Image)

	require.NoError(t, c.Delete(ctx, items[0].ID))
	assert.Empty(t, c.Items())
	assert.ErrorIs(t, c.Delete(ctx, items[0].ID), domain.ErrNotFound)
}

func TestHTTPAdminClient_ProductsAndRates(t *testing.T) {
	client := newAdminServer(t)
	gate := NewGate(client)
	ctx := context.Background()
	require.NoError(t, gate.Login(ctx, "open"))

	c := NewController[domain.Product](gate, client.Products())
	require.NoError(t, c.BeginAdd())
	require.NoError(t, c.Edit(func(p *domain.Product) {
		p.Name = "Jhumka"
		p.Category = "earrings"
		p.Price = 18500.5
		p.InStock = true
	}))
	require.NoError(t, c.PasteLink("https://cdn.example.com/jhumka.jpg"))
	require.NoError(t, c.Submit(ctx))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 18500.5, c.Items()[0].Price)

	// server side validation failure keeps the buffer
	require.NoError(t, c.BeginEdit(c.Items()[0]))
	require.NoError(t, c.Edit(func(p *domain.Product) { p.Category = "" }))
	err := c.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, Editing, c.State())
	assert.Contains(t, c.LastError(), "category")

	_, err = client.UpdateRates(ctx, 6250, 78)
	require.NoError(t, err)
	rate, err := client.UpdateRates(ctx, 6300, 80)
	require.NoError(t, err)
	assert.Equal(t, 6250.0, rate.PreviousGold)
	assert.Equal(t, 78.0, rate.PreviousSilver)

	got, err := client.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6300.0, got.Gold)
}
