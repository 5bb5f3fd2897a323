package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	Metal       string             `bson:"metal"`
	Purity      string             `bson:"purity"`
	Weight      string             `bson:"weight"`
	InStock     bool               `bson:"inStock"`
	Rating      float64            `bson:"rating,omitempty"`
	Reviews     int                `bson:"reviews,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Category:    d.Category,
		Description: d.Description,
		Price:       d.Price,
		Image:       d.Image,
		Metal:       d.Metal,
		Purity:      d.Purity,
		Weight:      d.Weight,
		InStock:     d.InStock,
		Rating:      d.Rating,
		Reviews:     d.Reviews,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func productFromDomain(id primitive.ObjectID, p *domain.Product) productDoc {
	return productDoc{
		ID:          id,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Metal:       p.Metal,
		Purity:      p.Purity,
		Weight:      p.Weight,
		InStock:     p.InStock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductRepository uses ObjectID identities
type ProductRepository struct {
	coll *mongo.Collection
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(domain.ErrInvalidID, "product id %q", id)
	}
	return oid, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, mapErr(err, "list products")
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(err, "decode products")
	}
	products := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err, "product "+id)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	oid := primitive.NewObjectID()
	if p.ID != "" {
		var err error
		if oid, err = objectID(p.ID); err != nil {
			return err
		}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, productFromDomain(oid, p)); err != nil {
		return mapErr(err, "insert product")
	}
	p.ID = oid.Hex()
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, fields domain.Fields) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, setDoc(repository.ProductUpdatable(fields)))
	if err != nil {
		return mapErr(err, "update product "+id)
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err, "delete product "+id)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %s", id)
	}
	return nil
}
