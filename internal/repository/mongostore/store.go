// Package mongostore keeps the storefront collections in MongoDB.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

const (
	CollectionRates    = "rates"
	CollectionSlider   = "slider"
	CollectionProducts = "products"
)

type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	products *ProductRepository
	slider   *SliderRepository
	rates    *RateRepository
}

var _ repository.Store = (*Store)(nil)

// Open connects to uri and selects database name
func Open(ctx context.Context, uri, name string, timeout time.Duration) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrStoreUnavailable, "connect mongodb: %v", err)
	}
	db := client.Database(name)
	s := &Store{
		client:   client,
		db:       db,
		products: &ProductRepository{coll: db.Collection(CollectionProducts)},
		slider:   &SliderRepository{coll: db.Collection(CollectionSlider)},
		rates:    &RateRepository{coll: db.Collection(CollectionRates)},
	}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Name() string { return "mongodb" }

func (s *Store) Products() repository.ProductRepository { return s.products }
func (s *Store) Slider() repository.SliderRepository    { return s.slider }
func (s *Store) Rates() repository.RateRepository       { return s.rates }

// Migrate creates the secondary indexes used by the read paths
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Collection(CollectionProducts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return mapErr(err, "create product indexes")
	}
	_, err = s.db.Collection(CollectionSlider).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return mapErr(err, "create slider indexes")
	}
	zap.L().Info("mongodb indexes ensured", zap.String("database", s.db.Name()))
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrapf(domain.ErrStoreUnavailable, "ping mongodb: %v", err)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes the whole database
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func mapErr(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Wrap(domain.ErrNotFound, msg)
	case mongo.IsDuplicateKeyError(err):
		return errors.Wrap(domain.NewValidationError("id", "already exists"), msg)
	}
	return errors.Wrapf(domain.ErrStoreUnavailable, "%s: %v", msg, err)
}

// setDoc turns a partial update into a $set document, stamping updatedAt
func setDoc(fields domain.Fields) bson.M {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set[domain.FieldUpdatedAt] = time.Now()
	return bson.M{"$set": set}
}
