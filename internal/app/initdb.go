package app

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/repository"
	"github.com/shreejewels/storefront/internal/repository/boltstore"
	"github.com/shreejewels/storefront/internal/repository/gormstore"
	"github.com/shreejewels/storefront/internal/repository/mongostore"
)

func dbTimeout(cfg config.DBConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(cfg.Timeout) * time.Second
}

// dataFile maps database.name onto a file for the embedded backends.
// A bare name like the default "storefront" gets ext and lands in the data dir.
func dataFile(cfg *config.AppConfig, ext string) string {
	file := cfg.Database.Name
	if file == "" {
		file = "storefront"
	}
	if path.Ext(file) == "" {
		file += ext
	}
	if !path.IsAbs(file) {
		file = path.Join(cfg.GetDataDir(), file)
	}
	return file
}

// openStore picks the repository backend from database.type
func openStore(ctx context.Context, cfg *config.AppConfig) (repository.Store, error) {
	db := cfg.Database
	switch db.Type {
	case "", "bolt":
		return boltstore.Open(dataFile(cfg, ".db"), dbTimeout(db))
	case "mongodb":
		uri := db.URI
		if uri == "" {
			uri = fmt.Sprintf("mongodb://%s:%d", db.Host, db.Port)
		}
		name := db.Name
		if name == "" {
			name = "storefront"
		}
		return mongostore.Open(ctx, uri, name, dbTimeout(db))
	case "postgres", "sqlite":
		return openGormStore(cfg)
	}
	return nil, errors.Errorf("unsupported database type %q", db.Type)
}

func openGormStore(cfg *config.AppConfig) (*gormstore.Store, error) {
	db := cfg.Database
	var dialector gorm.Dialector
	if db.Type == "sqlite" {
		dialector = sqlite.Open(dataFile(cfg, ".sqlite3"))
	} else {
		dsn := db.URI
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
				db.Host, db.Port, db.User, db.Passwd, db.Name, int(dbTimeout(db).Seconds()))
		}
		dialector = postgres.Open(dsn)
	}

	store, err := gormstore.Open(dialector, db.Debug)
	if err != nil {
		return nil, err
	}
	sqlDB, err := store.DB().DB()
	if err != nil {
		return nil, errors.Wrap(err, "database handle")
	}
	if db.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(db.MaxConn)
	}
	if db.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(db.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return store, nil
}

type dropper interface {
	Drop(ctx context.Context) error
}

// MigrateStore opens the configured store, optionally drops its data, and
// recreates the tables, buckets or indexes
func MigrateStore(ctx context.Context, cfg *config.AppConfig, reset bool) error {
	if err := cfg.InitDirs(); err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if reset {
		d, ok := store.(dropper)
		if !ok {
			return errors.Errorf("%s store does not support reset", store.Name())
		}
		if err := d.Drop(ctx); err != nil {
			return errors.Wrap(err, "reset store")
		}
		zap.S().Warnf("store %s reset", store.Name())
	}
	if err := store.Migrate(ctx); err != nil {
		return errors.Wrap(err, "migrate store")
	}
	zap.S().Infof("store %s migrated", store.Name())
	return nil
}
