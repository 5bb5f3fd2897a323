// Package gormstore keeps the storefront collections in a SQL database through gorm.
package gormstore

import (
	"context"
	"os"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type Store struct {
	db       *gorm.DB
	products *ProductRepository
	slider   *SliderRepository
	rates    *RateRepository
}

var _ repository.Store = (*Store)(nil)

// Open opens the database behind dialector
func Open(dialector gorm.Dialector, debugSQL bool) (*Store, error) {
	level := logger.Silent
	if debugSQL {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(domain.ErrStoreUnavailable, "open %s: %v", dialector.Name(), err)
	}
	return New(db), nil
}

// New wraps an existing connection
func New(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		products: &ProductRepository{db: db},
		slider:   &SliderRepository{db: db},
		rates:    &RateRepository{db: db},
	}
}

func (s *Store) Name() string { return s.db.Dialector.Name() }

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Products() repository.ProductRepository { return s.products }
func (s *Store) Slider() repository.SliderRepository    { return s.slider }
func (s *Store) Rates() repository.RateRepository       { return s.rates }

func (s *Store) Migrate(ctx context.Context) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err = errors.Errorf("migrate panic: %v", err1)
			zap.S().Error(err)
		}
	}()
	if err := s.db.WithContext(ctx).Migrator().AutoMigrate(Tables...); err != nil {
		return errors.Wrapf(domain.ErrStoreUnavailable, "auto migrate: %v", err)
	}
	return nil
}

// Drop removes every table, used by the migrate --reset command
func (s *Store) Drop(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().DropTable(Tables...); err != nil {
		return errors.Wrapf(domain.ErrStoreUnavailable, "drop tables: %v", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapErr(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(domain.ErrNotFound, msg)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return errors.Wrap(domain.NewValidationError("id", "already exists"), msg)
	}
	return errors.Wrapf(domain.ErrStoreUnavailable, "%s: %v", msg, err)
}

// isUniqueViolation catches constraint errors the dialector did not translate
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
