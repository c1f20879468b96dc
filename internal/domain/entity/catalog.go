package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL      string             `bson:"imageUrl" json:"imageUrl"`
	ImagePublicID string             `bson:"imagePublicId" json:"imagePublicId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ProductImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
}

// Product title is unique within its category.
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Category    primitive.ObjectID   `bson:"category" json:"category"`
	Images      []ProductImage       `bson:"images" json:"images"`
	VarietyIDs  []primitive.ObjectID `bson:"varietyIds" json:"varietyIds"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Variety is one purchasable variant of a product (pack size, weight class).
type Variety struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	Price     float64            `bson:"price" json:"price"`
	Discount  float64            `bson:"discount" json:"discount"`
	Stock     int                `bson:"stock" json:"stock"`
	Weight    *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	Quantity  *int               `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Unit      string             `bson:"unit,omitempty" json:"unit,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductWithRefs is the listing shape with category and varieties resolved.
type ProductWithRefs struct {
	Product   `bson:",inline"`
	CategoryD *Category `bson:"categoryDoc,omitempty" json:"categoryDoc,omitempty"`
	Varieties []Variety `bson:"varieties,omitempty" json:"varieties,omitempty"`
}
