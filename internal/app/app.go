package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/auth"
	"github.com/shreejewels/storefront/internal/catalog"
	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/projection"
	"github.com/shreejewels/storefront/internal/repository"
	"github.com/shreejewels/storefront/pkg/metrics"
)

type Application struct {
	appConfig     *config.AppConfig
	store         repository.Store
	resolver      *media.Resolver
	services      *catalog.Services
	projections   *projection.Service
	authenticator auth.Authenticator
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider      = (*Application)(nil)
	_ ConfigProvider     = (*Application)(nil)
	_ CatalogProvider    = (*Application)(nil)
	_ ProjectionProvider = (*Application)(nil)
	_ MediaProvider      = (*Application)(nil)
	_ AuthProvider       = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() repository.Store {
	return a.store
}

func (a *Application) Catalog() *catalog.Services {
	return a.services
}

func (a *Application) Projections() *projection.Service {
	return a.projections
}

func (a *Application) Media() *media.Resolver {
	return a.resolver
}

func (a *Application) Authenticator() auth.Authenticator {
	return a.authenticator
}

// InitLogger installs the global zap logger, optionally rotating into a file
func InitLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	var err error
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		zapConfig.OutputPaths = []string{"stdout"}
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Init opens the configured store and wires the services on top of it
func (a *Application) Init(ctx context.Context) (err error) {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := cfg.InitDirs(); err != nil {
		return err
	}
	generated, err := cfg.EnsureSecret()
	if err != nil {
		return err
	}
	if generated {
		zap.S().Warn("web.secret is not set, using a random one: admin sessions end on restart")
	}

	if err := metrics.InitMetrics(cfg.GetMetricsDir()); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}
	defer func() {
		if err != nil {
			_ = metrics.Close()
		}
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	zap.S().Infof("Database connection successful, type: %s", store.Name())

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return errors.Wrap(err, "migrate store")
	}

	mediaStore, err := openMediaStore(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}

	authenticator, err := auth.NewStaticPassphrase(cfg.Admin.Passphrase, cfg.Admin.PassphraseHash,
		time.Duration(cfg.Admin.TokenTTL)*time.Second)
	if err != nil {
		_ = store.Close()
		return err
	}

	return a.wire(store, media.NewResolver(mediaStore), authenticator)
}

// Wire builds the services over an already opened store (used by tests)
func (a *Application) Wire(store repository.Store, resolver *media.Resolver, authenticator auth.Authenticator) error {
	return a.wire(store, resolver, authenticator)
}

func (a *Application) wire(store repository.Store, resolver *media.Resolver, authenticator auth.Authenticator) error {
	services, err := catalog.NewServices(store, resolver)
	if err != nil {
		return err
	}
	a.store = store
	a.resolver = resolver
	a.services = services
	a.projections = projection.NewService(store)
	a.authenticator = authenticator
	return nil
}

func openMediaStore(cfg *config.AppConfig) (media.MediaStore, error) {
	switch cfg.Media.Backend {
	case "inline":
		return media.NewInlineEncodedStore(), nil
	case "", "disk":
		return media.NewDurableDiskStore(cfg.GetMediaDir())
	}
	return nil, errors.Errorf("unsupported media backend %q", cfg.Media.Backend)
}

// Release releases application resources
func (a *Application) Release() {
	if a.services != nil {
		a.services.Wait()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			zap.S().Warnf("close store: %v", err)
		}
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
