package domain

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Client is created implicitly by the first inquiry from a new email and
// refreshed on subsequent ones. Email is the de-facto identity key.
type Client struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type ClientSummary struct {
	ID    bson.ObjectID `bson:"_id" json:"id"`
	Name  string        `bson:"name" json:"name"`
	Email string        `bson:"email" json:"email"`
	Phone string        `bson:"phone,omitempty" json:"phone,omitempty"`
}

type ClientStats struct {
	TotalClients     int64 `json:"totalClients"`
	RecentClients    int64 `json:"recentClients"`
	ThisMonthClients int64 `json:"thisMonthClients"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// All storage and lookups go through this so the identity key is stable.
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func ValidEmail(e string) bool {
	return emailPattern.MatchString(strings.TrimSpace(e))
}
