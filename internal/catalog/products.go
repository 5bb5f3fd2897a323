package catalog

import (
	"context"
	"io"

	"github.com/asaskevich/EventBus"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/repository"
)

// ProductInput is a full product form
type ProductInput struct {
	Name        string  `validate:"required,max=200"`
	Category    string  `validate:"required,max=100"`
	Description string  `validate:"max=4000"`
	Price       float64 `validate:"gte=0"`
	Metal       string  `validate:"max=64"`
	Purity      string  `validate:"max=64"`
	Weight      string  `validate:"max=64"`
	InStock     bool
	Rating      float64           `validate:"gte=0,lte=5"`
	Reviews     int               `validate:"gte=0"`
	Image       media.ImageSource `validate:"-"`
}

func (in ProductInput) fields(image string) domain.Fields {
	return domain.Fields{
		domain.FieldName:        in.Name,
		domain.FieldCategory:    in.Category,
		domain.FieldDescription: in.Description,
		domain.FieldPrice:       in.Price,
		domain.FieldImage:       image,
		domain.FieldMetal:       in.Metal,
		domain.FieldPurity:      in.Purity,
		domain.FieldWeight:      in.Weight,
		domain.FieldInStock:     in.InStock,
		domain.FieldRating:      in.Rating,
		domain.FieldReviews:     in.Reviews,
	}
}

type ProductService struct {
	repo     repository.ProductRepository
	resolver *media.Resolver
	bus      EventBus.Bus
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	image, err := s.resolver.Resolve(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	p := &domain.Product{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Image:       image,
		Metal:       in.Metal,
		Purity:      in.Purity,
		Weight:      in.Weight,
		InStock:     in.InStock,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		discard(ctx, s.resolver, image, "")
		return nil, err
	}
	publish(s.bus, TopicCreated, Event{Kind: KindProduct, ID: p.ID, Image: p.Image})
	return p, nil
}

// Update replaces the product fields. An Unchanged image keeps the stored reference.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	image, err := s.resolver.ResolveOrKeep(ctx, in.Image, existing.Image)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, in.fields(image)); err != nil {
		discard(ctx, s.resolver, image, existing.Image)
		return nil, err
	}
	ev := Event{Kind: KindProduct, ID: id, Image: image}
	if image != existing.Image {
		ev.PrevImage = existing.Image
	}
	publish(s.bus, TopicUpdated, ev)
	return s.repo.Get(ctx, id)
}

// Delete removes the document. Media cleanup runs afterwards and never fails the call.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(s.bus, TopicDeleted, Event{Kind: KindProduct, ID: id, Image: existing.Image})
	return nil
}

// ExportCSV writes every product as CSV, newest first
func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	return errors.Wrap(gocsv.Marshal(&products, w), "export products")
}
