package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

type InquiryRepo struct {
	coll *mongo.Collection
}

// joinStages resolves clientId and propertyId into embedded client and
// property summaries, the document-store equivalent of populate().
func joinStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "clients",
			"localField":   "clientId",
			"foreignField": "_id",
			"as":           "client",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$client", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$property", "preserveNullAndEmptyArrays": true}}},
	}
}

func (r *InquiryRepo) Insert(ctx context.Context, in *domain.Inquiry) error {
	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, in)
	if err != nil {
		return err
	}
	in.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *InquiryRepo) GetView(ctx context.Context, id bson.ObjectID) (domain.InquiryView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, joinStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.InquiryView{}, err
	}
	defer cursor.Close(ctx)

	var out []domain.InquiryView
	if err := cursor.All(ctx, &out); err != nil {
		return domain.InquiryView{}, err
	}
	if len(out) == 0 {
		return domain.InquiryView{}, domain.NotFoundError{Resource: "Inquiry"}
	}
	return out[0], nil
}

// ListViews returns inquiries joined with summaries, newest first.
func (r *InquiryRepo) ListViews(ctx context.Context, pg domain.Page) ([]domain.InquiryView, int64, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: pg.Offset()}},
		{{Key: "$limit", Value: int64(pg.Limit)}},
	}, joinStages()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []domain.InquiryView
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *InquiryRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "Inquiry"}
	}
	return nil
}
