package domain

import "time"

// SliderItem is one hero slide of the storefront
type SliderItem struct {
	ID        string    `json:"id" mapstructure:"id"`
	Image     string    `json:"image" mapstructure:"image"`
	Title     string    `json:"title" mapstructure:"title"`
	Subtitle  string    `json:"subtitle" mapstructure:"subtitle"`
	Link      string    `json:"link" mapstructure:"link"`
	CreatedAt time.Time `json:"createdAt" mapstructure:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" mapstructure:"updatedAt"`
}

func (s SliderItem) GetID() string    { return s.ID }
func (s SliderItem) GetImage() string { return s.Image }

func (s *SliderItem) Touch(t time.Time) { s.UpdatedAt = t }
