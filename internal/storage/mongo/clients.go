package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

type ClientRepo struct {
	coll *mongo.Collection
}

// Upsert inserts-or-updates atomically keyed on the normalized email, backed
// by the unique email index. Name and phone are refreshed on every inquiry;
// email is the identity key and never changes.
func (r *ClientRepo) Upsert(ctx context.Context, name, email, phone string) (domain.Client, error) {
	email = domain.NormalizeEmail(email)
	now := time.Now().UTC()

	set := bson.M{"name": name, "updatedAt": now}
	if phone != "" {
		set["phone"] = phone
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"email": email, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c domain.Client
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&c); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func (r *ClientRepo) Get(ctx context.Context, id bson.ObjectID) (domain.Client, error) {
	var c domain.Client
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Client{}, domain.NotFoundError{Resource: "Client"}
	}
	return c, err
}

// List returns clients newest first; search matches name, email or phone
// case-insensitively.
func (r *ClientRepo) List(ctx context.Context, search string, pg domain.Page) ([]domain.Client, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": search, "$options": "i"}},
		}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pg.Offset()).
		SetLimit(int64(pg.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []domain.Client
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ClientRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "Client"}
	}
	return nil
}

func (r *ClientRepo) Count(ctx context.Context, since *time.Time) (int64, error) {
	filter := bson.M{}
	if since != nil {
		filter["createdAt"] = bson.M{"$gte": *since}
	}
	return r.coll.CountDocuments(ctx, filter)
}
