package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MaxMessageLen caps inquiry messages and viewing notes.
const MaxMessageLen = 1000

// Inquiry is immutable once created; it references but does not own its
// client and property.
type Inquiry struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID   bson.ObjectID `bson:"clientId" json:"clientId"`
	PropertyID bson.ObjectID `bson:"propertyId" json:"propertyId"`
	Message    string        `bson:"message" json:"message"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// InquiryView is an inquiry joined with its client and property summaries.
type InquiryView struct {
	ID        bson.ObjectID   `bson:"_id" json:"id"`
	Client    ClientSummary   `bson:"client" json:"client"`
	Property  PropertySummary `bson:"property" json:"property"`
	Message   string          `bson:"message" json:"message"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
}
