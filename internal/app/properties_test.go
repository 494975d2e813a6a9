package app_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/app"
	"github.com/ZaidAr98/PropTrack/internal/domain"
)

func propertyInput() app.PropertyInput {
	return app.PropertyInput{
		Title:       "Studio",
		Description: "Compact studio near the metro",
		Price:       900,
		Type:        "rent",
		Location:    "Midtown",
		Bedrooms:    0,
		Bathrooms:   1,
		Area:        40,
		Amenities:   []string{" wifi ", "", "parking"},
	}
}

func TestCreateProperty(t *testing.T) {
	repo := newFakeProperties()
	images := &fakeImages{}
	svc := app.NewPropertyService(repo, images, &fakeCache{}, time.Minute)

	p, err := svc.Create(context.Background(), propertyInput(), []app.ImageUpload{
		{Data: []byte{1}, ContentType: "image/jpeg"},
		{Data: []byte{2}, ContentType: "image/png"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(p.Images) != 2 {
		t.Fatalf("images: %v", p.Images)
	}
	if !slices.Equal(p.Amenities, []string{"wifi", "parking"}) {
		t.Fatalf("amenities not cleaned: %v", p.Amenities)
	}
	if _, ok := repo.props[p.ID]; !ok {
		t.Fatal("property not persisted")
	}
}

func TestCreateProperty_SkipsFailedUpload(t *testing.T) {
	repo := newFakeProperties()
	images := &fakeImages{failOn: 2}
	svc := app.NewPropertyService(repo, images, &fakeCache{}, time.Minute)

	p, err := svc.Create(context.Background(), propertyInput(), []app.ImageUpload{
		{Data: []byte{1}, ContentType: "image/jpeg"},
		{Data: []byte{2}, ContentType: "image/jpeg"},
		{Data: []byte{3}, ContentType: "image/jpeg"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(p.Images) != 2 {
		t.Fatalf("one failed upload must be skipped, got %v", p.Images)
	}
}

func TestCreateProperty_Invalid(t *testing.T) {
	repo := newFakeProperties()
	images := &fakeImages{}
	svc := app.NewPropertyService(repo, images, &fakeCache{}, time.Minute)

	in := propertyInput()
	in.Title = "  "
	_, err := svc.Create(context.Background(), in, []app.ImageUpload{{Data: []byte{1}, ContentType: "image/jpeg"}})
	if !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	if images.uploads != 0 {
		t.Fatal("nothing must be uploaded for invalid input")
	}
	if len(repo.props) != 0 {
		t.Fatal("nothing must be persisted for invalid input")
	}
}

func TestGetProperty_CachesSecondRead(t *testing.T) {
	p := domain.Property{ID: bson.NewObjectID(), Title: "Flat", Description: "d", Location: "l", Type: domain.PropertyRent, Price: 100}
	repo := newFakeProperties(p)
	svc := app.NewPropertyService(repo, &fakeImages{}, &fakeCache{}, time.Minute)

	if _, err := svc.Get(context.Background(), p.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("got %+v", got)
	}
	if repo.getHits != 1 {
		t.Fatalf("second read must come from cache, repo hits = %d", repo.getHits)
	}
}

func TestUpdateProperty_DeletesDroppedImages(t *testing.T) {
	p := domain.Property{
		ID: bson.NewObjectID(), Title: "Flat", Description: "d", Location: "l",
		Type: domain.PropertyRent, Price: 100,
		Images: []string{"https://img.test/properties/a.jpg", "https://img.test/properties/b.jpg"},
	}
	repo := newFakeProperties(p)
	images := &fakeImages{}
	cache := &fakeCache{}
	svc := app.NewPropertyService(repo, images, cache, time.Minute)

	updated, err := svc.Update(context.Background(), p.ID, propertyInput(),
		[]string{"https://img.test/properties/a.jpg"},
		[]app.ImageUpload{{Data: []byte{1}, ContentType: "image/jpeg"}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(updated.Images) != 2 {
		t.Fatalf("images: %v", updated.Images)
	}
	if !slices.Equal(images.deleted, []string{"https://img.test/properties/b.jpg"}) {
		t.Fatalf("deleted: %v", images.deleted)
	}
	if len(cache.dels) != 1 {
		t.Fatal("cache entry must be invalidated on update")
	}
}

func TestDeleteProperty_ProceedsWhenImageCleanupFails(t *testing.T) {
	p := domain.Property{
		ID: bson.NewObjectID(), Title: "Flat", Description: "d", Location: "l",
		Type: domain.PropertyRent, Price: 100,
		Images: []string{"https://img.test/properties/a.jpg"},
	}
	repo := newFakeProperties(p)
	images := &fakeImages{deleteErr: errors.New("bucket unreachable")}
	svc := app.NewPropertyService(repo, images, &fakeCache{}, time.Minute)

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("delete must not fail on image cleanup: %v", err)
	}
	if _, ok := repo.props[p.ID]; ok {
		t.Fatal("property must be removed")
	}
}

func TestArchiveProperty(t *testing.T) {
	p := domain.Property{ID: bson.NewObjectID(), Title: "Flat", Description: "d", Location: "l", Type: domain.PropertyRent, Price: 100}
	repo := newFakeProperties(p)
	cache := &fakeCache{}
	svc := app.NewPropertyService(repo, &fakeImages{}, cache, time.Minute)

	got, err := svc.Archive(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !got.Archived {
		t.Fatal("property must be archived")
	}
	if len(cache.dels) != 1 {
		t.Fatal("cache entry must be invalidated on archive")
	}
}
