package domain

// Fields is a partial update keyed by the JSON field names of an entity
type Fields map[string]interface{}

const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImage       = "image"
	FieldMetal       = "metal"
	FieldPurity      = "purity"
	FieldWeight      = "weight"
	FieldInStock     = "inStock"
	FieldRating      = "rating"
	FieldReviews     = "reviews"
	FieldTitle       = "title"
	FieldSubtitle    = "subtitle"
	FieldLink        = "link"
	FieldUpdatedAt   = "updatedAt"
)

// ProductFields lists the keys a product update may carry
var ProductFields = []string{
	FieldName, FieldCategory, FieldDescription, FieldPrice, FieldImage,
	FieldMetal, FieldPurity, FieldWeight, FieldInStock, FieldRating, FieldReviews,
}

var SliderFields = []string{FieldImage, FieldTitle, FieldSubtitle, FieldLink}

// Only returns a copy of f restricted to keys
func (f Fields) Only(keys []string) Fields {
	out := make(Fields, len(f))
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}
