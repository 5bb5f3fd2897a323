package gormstore

import (
	"strconv"
	"time"

	"github.com/shreejewels/storefront/internal/domain"
)

// ProductRow is the SQL shape of domain.Product
type ProductRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false"`
	Name        string    `gorm:"size:200;index"`
	Category    string    `gorm:"size:100;index"`
	Description string    `gorm:"type:text"`
	Price       float64
	Image       string    `gorm:"type:text"` // may hold an inline data reference
	Metal       string    `gorm:"size:64"`
	Purity      string    `gorm:"size:64"`
	Weight      string    `gorm:"size:64"`
	InStock     bool
	Rating      float64
	Reviews     int
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (ProductRow) TableName() string {
	return "store_product"
}

func (r ProductRow) toDomain() domain.Product {
	return domain.Product{
		ID:          strconv.FormatInt(r.ID, 10),
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Metal:       r.Metal,
		Purity:      r.Purity,
		Weight:      r.Weight,
		InStock:     r.InStock,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type SliderRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Image     string    `gorm:"type:text"`
	Title     string    `gorm:"size:200"`
	Subtitle  string    `gorm:"size:500"`
	Link      string    `gorm:"size:1024"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (SliderRow) TableName() string {
	return "store_slider"
}

func (r SliderRow) toDomain() domain.SliderItem {
	return domain.SliderItem{
		ID:        r.ID,
		Image:     r.Image,
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Link:      r.Link,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type RateRow struct {
	Key            string `gorm:"column:rate_key;primaryKey;size:64"`
	Gold           float64
	Silver         float64
	LastUpdated    time.Time
	PreviousGold   float64
	PreviousSilver float64
}

func (RateRow) TableName() string {
	return "store_rates"
}

func (r RateRow) toDomain() *domain.MetalRate {
	return &domain.MetalRate{
		Key:            r.Key,
		Gold:           r.Gold,
		Silver:         r.Silver,
		LastUpdated:    r.LastUpdated,
		PreviousGold:   r.PreviousGold,
		PreviousSilver: r.PreviousSilver,
	}
}

var Tables = []interface{}{
	&ProductRow{},
	&SliderRow{},
	&RateRow{},
}

// columns maps domain field names onto SQL columns
var columns = map[string]string{
	domain.FieldName:        "name",
	domain.FieldCategory:    "category",
	domain.FieldDescription: "description",
	domain.FieldPrice:       "price",
	domain.FieldImage:       "image",
	domain.FieldMetal:       "metal",
	domain.FieldPurity:      "purity",
	domain.FieldWeight:      "weight",
	domain.FieldInStock:     "in_stock",
	domain.FieldRating:      "rating",
	domain.FieldReviews:     "reviews",
	domain.FieldTitle:       "title",
	domain.FieldSubtitle:    "subtitle",
	domain.FieldLink:        "link",
}

func toColumns(fields domain.Fields) map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	for k, v := range fields {
		if col, ok := columns[k]; ok {
			updates[col] = v
		}
	}
	return updates
}
