package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/catalog"
	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/media"
)

func testConfig(t *testing.T) *config.AppConfig {
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Admin.Passphrase = "let-me-in"
	cfg.Logger.FileEnable = false
	return &cfg
}

func TestApplication_InitBolt(t *testing.T) {
	cfg := testConfig(t)
	a := NewApplication(cfg)
	require.NoError(t, a.Init(context.Background()))
	defer a.Release()

	assert.Equal(t, "bolt", a.Store().Name())
	assert.GreaterOrEqual(t, len(cfg.Web.Secret), config.MinSecretLength, "random signing secret generated")
	assert.NoError(t, a.Store().Ping(context.Background()))
	assert.NotNil(t, a.Catalog())
	assert.NotNil(t, a.Projections())
	_, isDisk := a.Media().Store().(*media.DurableDiskStore)
	assert.True(t, isDisk)

	_, err := a.Authenticator().Authenticate(context.Background(), "let-me-in")
	assert.NoError(t, err)
}

func TestApplication_InitSqliteInline(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "sqlite"
	cfg.Media.Backend = "inline"
	a := NewApplication(cfg)
	require.NoError(t, a.Init(context.Background()))
	defer a.Release()

	assert.Equal(t, "sqlite", a.Store().Name())
	_, isInline := a.Media().Store().(*media.InlineEncodedStore)
	assert.True(t, isInline)
}

func TestApplication_InitRejectsUnknownBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "cassandra"
	assert.Error(t, NewApplication(cfg).Init(context.Background()))

	cfg = testConfig(t)
	cfg.Media.Backend = "s3"
	assert.Error(t, NewApplication(cfg).Init(context.Background()))
}

func TestMigrateStore_ResetClearsData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "sqlite"
	ctx := context.Background()

	a := NewApplication(cfg)
	require.NoError(t, a.Init(ctx))
	_, err := a.Catalog().Rates.Update(ctx, catalog.RateInput{Gold: 7000, Silver: 90})
	require.NoError(t, err)
	a.Release()

	require.NoError(t, MigrateStore(ctx, cfg, true))

	b := NewApplication(cfg)
	require.NoError(t, b.Init(ctx))
	defer b.Release()
	_, err = b.Store().Rates().Get(ctx, domain.RateKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDataFile(t *testing.T) {
	cfg := testConfig(t)
	dataDir := cfg.GetDataDir()

	assert.Equal(t, filepath.Join(dataDir, "storefront.db"), dataFile(cfg, ".db"))
	assert.Equal(t, filepath.Join(dataDir, "storefront.sqlite3"), dataFile(cfg, ".sqlite3"))

	cfg.Database.Name = "shop.bolt"
	assert.Equal(t, filepath.Join(dataDir, "shop.bolt"), dataFile(cfg, ".db"))

	cfg.Database.Name = "/srv/shop.db"
	assert.Equal(t, "/srv/shop.db", dataFile(cfg, ".db"))

	cfg.Database.Name = ""
	assert.Equal(t, filepath.Join(dataDir, "storefront.db"), dataFile(cfg, ".db"))
}

func TestApplication_InitBoltUsesDbFile(t *testing.T) {
	cfg := testConfig(t)
	a := NewApplication(cfg)
	require.NoError(t, a.Init(context.Background()))
	a.Release()

	assert.FileExists(t, filepath.Join(cfg.GetDataDir(), "storefront.db"))
}
