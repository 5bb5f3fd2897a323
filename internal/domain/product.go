package domain

import "time"

// Product is a catalog entry. Category is both the grouping key of the story
// feed and the route parameter of the catalog page.
type Product struct {
	ID          string    `json:"id" mapstructure:"id" csv:"id"`
	Name        string    `json:"name" mapstructure:"name" csv:"name"`
	Category    string    `json:"category" mapstructure:"category" csv:"category"`
	Description string    `json:"description,omitempty" mapstructure:"description" csv:"description"`
	Price       float64   `json:"price" mapstructure:"price" csv:"price"`
	Image       string    `json:"image" mapstructure:"image" csv:"image"`
	Metal       string    `json:"metal" mapstructure:"metal" csv:"metal"`
	Purity      string    `json:"purity" mapstructure:"purity" csv:"purity"`
	Weight      string    `json:"weight" mapstructure:"weight" csv:"weight"`
	InStock     bool      `json:"inStock" mapstructure:"inStock" csv:"in_stock"`
	Rating      float64   `json:"rating,omitempty" mapstructure:"rating" csv:"rating"`
	Reviews     int       `json:"reviews,omitempty" mapstructure:"reviews" csv:"reviews"`
	CreatedAt   time.Time `json:"createdAt" mapstructure:"createdAt" csv:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" mapstructure:"updatedAt" csv:"updated_at"`
}

func (p Product) GetID() string    { return p.ID }
func (p Product) GetImage() string { return p.Image }

func (p *Product) Touch(t time.Time) { p.UpdatedAt = t }

// Story is the "latest per category" projection of the product catalog
type Story struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Category string `json:"category"`
}
