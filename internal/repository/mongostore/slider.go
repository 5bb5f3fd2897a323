package mongostore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/repository"
)

// sliderDoc keys slides by their client generated id
type sliderDoc struct {
	ID        string    `bson:"_id"`
	Image     string    `bson:"image"`
	Title     string    `bson:"title"`
	Subtitle  string    `bson:"subtitle"`
	Link      string    `bson:"link"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d sliderDoc) toDomain() domain.SliderItem {
	return domain.SliderItem{
		ID:        d.ID,
		Image:     d.Image,
		Title:     d.Title,
		Subtitle:  d.Subtitle,
		Link:      d.Link,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type SliderRepository struct {
	coll *mongo.Collection
}

var _ repository.SliderRepository = (*SliderRepository)(nil)

func checkSliderID(id string) error {
	if !repository.ValidSliderID(id) {
		return errors.Wrapf(domain.ErrInvalidID, "slider id %q", id)
	}
	return nil
}

func (r *SliderRepository) List(ctx context.Context) ([]domain.SliderItem, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, mapErr(err, "list slider")
	}
	var docs []sliderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapErr(err, "decode slider")
	}
	items := make([]domain.SliderItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (r *SliderRepository) Get(ctx context.Context, id string) (*domain.SliderItem, error) {
	if err := checkSliderID(id); err != nil {
		return nil, err
	}
	var doc sliderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapErr(err, "slider "+id)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *SliderRepository) Create(ctx context.Context, item *domain.SliderItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if err := checkSliderID(item.ID); err != nil {
		return err
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	doc := sliderDoc{
		ID:        item.ID,
		Image:     item.Image,
		Title:     item.Title,
		Subtitle:  item.Subtitle,
		Link:      item.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err, "insert slider")
	}
	return nil
}

func (r *SliderRepository) Update(ctx context.Context, id string, fields domain.Fields) error {
	if err := checkSliderID(id); err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, setDoc(repository.SliderUpdatable(fields)))
	if err != nil {
		return mapErr(err, "update slider "+id)
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(domain.ErrNotFound, "slider %s", id)
	}
	return nil
}

func (r *SliderRepository) Delete(ctx context.Context, id string) error {
	if err := checkSliderID(id); err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err, "delete slider "+id)
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(domain.ErrNotFound, "slider %s", id)
	}
	return nil
}
