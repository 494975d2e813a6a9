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

type ViewingRepo struct {
	coll *mongo.Collection
}

func (r *ViewingRepo) Insert(ctx context.Context, v *domain.Viewing) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, v)
	if err != nil {
		// The partial unique index on (propertyId, date, time) rejects a
		// second active booking that raced past the pre-check.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ConflictError{Msg: "A viewing is already scheduled for this property at the specified date and time"}
		}
		return err
	}
	v.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *ViewingRepo) Get(ctx context.Context, id bson.ObjectID) (domain.Viewing, error) {
	var v domain.Viewing
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Viewing{}, domain.NotFoundError{Resource: "Viewing"}
	}
	return v, err
}

func (r *ViewingRepo) GetView(ctx context.Context, id bson.ObjectID) (domain.ViewingView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, joinStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.ViewingView{}, err
	}
	defer cursor.Close(ctx)

	var out []domain.ViewingView
	if err := cursor.All(ctx, &out); err != nil {
		return domain.ViewingView{}, err
	}
	if len(out) == 0 {
		return domain.ViewingView{}, domain.NotFoundError{Resource: "Viewing"}
	}
	return out[0], nil
}

// ListViews returns all viewings joined with summaries, date then time
// ascending.
func (r *ViewingRepo) ListViews(ctx context.Context) ([]domain.ViewingView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}}},
	}, joinStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domain.ViewingView
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ViewingRepo) SetStatus(ctx context.Context, id bson.ObjectID, status domain.ViewingStatus, notes *string) error {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if notes != nil {
		set["notes"] = *notes
	}
	return r.update(ctx, id, bson.M{"$set": set})
}

func (r *ViewingRepo) SetNotes(ctx context.Context, id bson.ObjectID, notes string) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"notes": notes, "updatedAt": time.Now().UTC()}})
}

func (r *ViewingRepo) update(ctx context.Context, id bson.ObjectID, update bson.M) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v domain.Viewing
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NotFoundError{Resource: "Viewing"}
	}
	return err
}

// ActiveExists reports whether a non-cancelled viewing already occupies the
// (property, date, time) slot.
func (r *ViewingRepo) ActiveExists(ctx context.Context, propertyID bson.ObjectID, date time.Time, t string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"propertyId": propertyID,
		"date":       date,
		"time":       t,
		"status":     bson.M{"$ne": domain.ViewingCancelled},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
