// Package mongostore implements the repository ports over MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Store owns the MongoDB connection and hands out per-collection repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens and pings a MongoDB connection. The caller owns the lifecycle
// and must Close the store on shutdown.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

func (s *Store) Properties() *PropertyRepo { return &PropertyRepo{coll: s.db.Collection("properties")} }
func (s *Store) Clients() *ClientRepo      { return &ClientRepo{coll: s.db.Collection("clients")} }
func (s *Store) Inquiries() *InquiryRepo   { return &InquiryRepo{coll: s.db.Collection("inquiries")} }
func (s *Store) Viewings() *ViewingRepo    { return &ViewingRepo{coll: s.db.Collection("viewings")} }

// DropData wipes all collections. Used by the dev seeder only.
func (s *Store) DropData(ctx context.Context) error {
	for _, name := range []string{"properties", "clients", "inquiries", "viewings"} {
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}

// EnsureIndexes creates the secondary and uniqueness indexes. Idempotent;
// runs at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	propertyIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "bedrooms", Value: 1}}},
		{Keys: bson.D{{Key: "bathrooms", Value: 1}}},
		{Keys: bson.D{{Key: "area", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
		{Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "price", Value: 1},
			{Key: "location", Value: 1},
			{Key: "bedrooms", Value: 1},
		}},
	}
	if _, err := s.db.Collection("properties").Indexes().CreateMany(ctx, propertyIndexes); err != nil {
		return fmt.Errorf("properties indexes: %w", err)
	}

	// Email is the client identity key; uniqueness makes the find-or-create
	// upsert race-free.
	clientIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := s.db.Collection("clients").Indexes().CreateMany(ctx, clientIndexes); err != nil {
		return fmt.Errorf("clients indexes: %w", err)
	}

	inquiryIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "propertyId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := s.db.Collection("inquiries").Indexes().CreateMany(ctx, inquiryIndexes); err != nil {
		return fmt.Errorf("inquiries indexes: %w", err)
	}

	// The partial unique index closes the schedule check-then-act race: two
	// concurrent inserts for the same active slot cannot both land. Cancelled
	// viewings are excluded so a cancelled slot can be rebooked.
	viewingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{
			Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": []string{"scheduled", "completed", "no_show"}},
				}),
		},
	}
	if _, err := s.db.Collection("viewings").Indexes().CreateMany(ctx, viewingIndexes); err != nil {
		return fmt.Errorf("viewings indexes: %w", err)
	}

	return nil
}
