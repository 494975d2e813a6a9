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

type PropertyRepo struct {
	coll *mongo.Collection
}

func (r *PropertyRepo) Insert(ctx context.Context, p *domain.Property) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *PropertyRepo) Get(ctx context.Context, id bson.ObjectID) (domain.Property, error) {
	var p domain.Property
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Property{}, domain.NotFoundError{Resource: "Property"}
	}
	return p, err
}

func (r *PropertyRepo) Summary(ctx context.Context, id bson.ObjectID) (domain.PropertySummary, error) {
	var s domain.PropertySummary
	opts := options.FindOne().SetProjection(bson.M{"title": 1, "location": 1, "price": 1, "type": 1})
	err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PropertySummary{}, domain.NotFoundError{Resource: "Property"}
	}
	return s, err
}

func (r *PropertyRepo) Update(ctx context.Context, p *domain.Property) (domain.Property, error) {
	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"type":        p.Type,
		"location":    p.Location,
		"bedrooms":    p.Bedrooms,
		"bathrooms":   p.Bathrooms,
		"area":        p.Area,
		"amenities":   p.Amenities,
		"images":      p.Images,
		"updatedAt":   time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, p.ID, update)
}

func (r *PropertyRepo) Archive(ctx context.Context, id bson.ObjectID) (domain.Property, error) {
	update := bson.M{"$set": bson.M{"archived": true, "updatedAt": time.Now().UTC()}}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *PropertyRepo) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update bson.M) (domain.Property, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Property
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Property{}, domain.NotFoundError{Resource: "Property"}
	}
	return p, err
}

func (r *PropertyRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "Property"}
	}
	return nil
}

// List returns non-archived properties, newest first.
func (r *PropertyRepo) List(ctx context.Context, pg domain.Page) ([]domain.Property, int64, error) {
	filter := bson.M{"archived": bson.M{"$ne": true}}
	return r.page(ctx, filter, domain.SortOrder{Field: "createdAt", Desc: true}, pg)
}

// Search applies the normalized filter set. Structured criteria are AND'd;
// the free-text term rides the title/description text index.
func (r *PropertyRepo) Search(ctx context.Context, f domain.PropertyFilter, pg domain.Page) ([]domain.Property, int64, error) {
	filter := searchFilter(f)
	return r.page(ctx, filter, f.Sort.Order(), pg)
}

func searchFilter(f domain.PropertyFilter) bson.M {
	filter := bson.M{"archived": bson.M{"$ne": true}}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.Location != nil {
		filter["location"] = bson.M{"$regex": *f.Location, "$options": "i"}
	}
	if f.Type != nil {
		filter["type"] = *f.Type
	}
	if f.Bedrooms != nil {
		filter["bedrooms"] = *f.Bedrooms
	}
	if f.Bathrooms != nil {
		filter["bathrooms"] = *f.Bathrooms
	}
	if f.MinArea != nil || f.MaxArea != nil {
		area := bson.M{}
		if f.MinArea != nil {
			area["$gte"] = *f.MinArea
		}
		if f.MaxArea != nil {
			area["$lte"] = *f.MaxArea
		}
		filter["area"] = area
	}
	if len(f.Amenities) > 0 {
		filter["amenities"] = bson.M{"$in": f.Amenities}
	}
	if f.Search != nil {
		filter["$text"] = bson.M{"$search": *f.Search}
	}
	return filter
}

func (r *PropertyRepo) page(ctx context.Context, filter bson.M, order domain.SortOrder, pg domain.Page) ([]domain.Property, int64, error) {
	dir := 1
	if order.Desc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: order.Field, Value: dir}}).
		SetSkip(pg.Offset()).
		SetLimit(int64(pg.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []domain.Property
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
