package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type rateDoc struct {
	Key            string    `bson:"_id"`
	Gold           float64   `bson:"gold"`
	Silver         float64   `bson:"silver"`
	LastUpdated    time.Time `bson:"lastUpdated"`
	PreviousGold   float64   `bson:"previousGold"`
	PreviousSilver float64   `bson:"previousSilver"`
}

func (d rateDoc) toDomain() *domain.MetalRate {
	return &domain.MetalRate{
		Key:            d.Key,
		Gold:           d.Gold,
		Silver:         d.Silver,
		LastUpdated:    d.LastUpdated,
		PreviousGold:   d.PreviousGold,
		PreviousSilver: d.PreviousSilver,
	}
}

type RateRepository struct {
	coll *mongo.Collection
}

var _ repository.RateRepository = (*RateRepository)(nil)

func (r *RateRepository) Get(ctx context.Context, key string) (*domain.MetalRate, error) {
	var doc rateDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		return nil, mapErr(err, "rates "+key)
	}
	return doc.toDomain(), nil
}

// UpsertSingleton uses an update pipeline so the previous values are copied
// server side, in the same write that stores the new ones.
func (r *RateRepository) UpsertSingleton(ctx context.Context, key string, gold, silver float64) (*domain.MetalRate, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "previousGold", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$gold", gold}}}},
			{Key: "previousSilver", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$silver", silver}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "gold", Value: gold},
			{Key: "silver", Value: silver},
			{Key: "lastUpdated", Value: time.Now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc rateDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": key}, pipeline, opts).Decode(&doc); err != nil {
		return nil, mapErr(err, "upsert rates")
	}
	return doc.toDomain(), nil
}
