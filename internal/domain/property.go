package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PropertyType string

const (
	PropertySale PropertyType = "sale"
	PropertyRent PropertyType = "rent"
)

// ParsePropertyType validates the listing type enum.
func ParsePropertyType(s string) (PropertyType, bool) {
	switch PropertyType(s) {
	case PropertySale, PropertyRent:
		return PropertyType(s), true
	}
	return "", false
}

type Property struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Price       float64       `bson:"price" json:"price"`
	Type        PropertyType  `bson:"type" json:"type"`
	Location    string        `bson:"location" json:"location"`
	Bedrooms    int           `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int           `bson:"bathrooms" json:"bathrooms"`
	Area        float64       `bson:"area" json:"area"`
	Amenities   []string      `bson:"amenities" json:"amenities"`
	Images      []string      `bson:"images" json:"images"`
	Archived    bool          `bson:"archived" json:"archived"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the schema-level invariants: required text fields,
// valid type enum, and non-negative numbers.
func (p *Property) Validate() error {
	if strings.TrimSpace(p.Title) == "" ||
		strings.TrimSpace(p.Description) == "" ||
		strings.TrimSpace(p.Location) == "" {
		return Invalid("All required fields must be provided")
	}
	if _, ok := ParsePropertyType(string(p.Type)); !ok {
		return Invalid("Property type must be either sale or rent")
	}
	if p.Price < 0 || p.Area < 0 || p.Bedrooms < 0 || p.Bathrooms < 0 {
		return Invalid("Price, bedrooms, bathrooms and area must not be negative")
	}
	return nil
}

// PropertySummary is the joined view attached to viewings and inquiries.
type PropertySummary struct {
	ID       bson.ObjectID `bson:"_id" json:"id"`
	Title    string        `bson:"title" json:"title"`
	Location string        `bson:"location" json:"location"`
	Price    float64       `bson:"price" json:"price"`
	Type     PropertyType  `bson:"type" json:"type"`
}
