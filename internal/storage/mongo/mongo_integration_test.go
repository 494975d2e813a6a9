//go:build integration || !unit

package mongostore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/ZaidAr98/PropTrack/internal/domain"
	mongostore "github.com/ZaidAr98/PropTrack/internal/storage/mongo"
)

func startMongo(t *testing.T) *mongostore.Store {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mongo: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))

	var store *mongostore.Store
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var e error
		store, e = mongostore.Connect(ctx, uri, "proptrack_test")
		return e
	}); err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	if err := store.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return store
}

func seedProperty(t *testing.T, store *mongostore.Store, title string, price float64) domain.Property {
	t.Helper()
	p := domain.Property{
		Title:       title,
		Description: "desc",
		Price:       price,
		Type:        domain.PropertyRent,
		Location:    "Dubai Marina",
		Bedrooms:    2,
		Bathrooms:   1,
		Area:        90,
	}
	if err := store.Properties().Insert(context.Background(), &p); err != nil {
		t.Fatalf("insert property: %v", err)
	}
	return p
}

func TestMongo_PropertySearchAndSort(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()

	seedProperty(t, store, "mid", 300)
	seedProperty(t, store, "cheap", 100)
	seedProperty(t, store, "dear", 500)

	items, total, err := store.Properties().Search(ctx,
		domain.PropertyFilter{Sort: domain.SortPriceLowHigh},
		domain.NewPage(1, 10, 10))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("total=%d len=%d", total, len(items))
	}
	for i, want := range []float64{100, 300, 500} {
		if items[i].Price != want {
			t.Fatalf("order: got %v at %d, want %v", items[i].Price, i, want)
		}
	}

	// price range filter
	min, max := 150.0, 400.0
	items, total, err = store.Properties().Search(ctx,
		domain.PropertyFilter{MinPrice: &min, MaxPrice: &max},
		domain.NewPage(1, 10, 10))
	if err != nil {
		t.Fatalf("ranged search: %v", err)
	}
	if total != 1 || items[0].Title != "mid" {
		t.Fatalf("range filter: total=%d items=%+v", total, items)
	}

	// archived listings disappear from public queries
	archived := seedProperty(t, store, "gone", 200)
	if _, err := store.Properties().Archive(ctx, archived.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	_, total, err = store.Properties().Search(ctx, domain.PropertyFilter{}, domain.NewPage(1, 10, 10))
	if err != nil {
		t.Fatalf("post-archive search: %v", err)
	}
	if total != 3 {
		t.Fatalf("archived listing leaked into search, total=%d", total)
	}
}

func TestMongo_ClientUpsertIsAtomicByEmail(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()

	first, err := store.Clients().Upsert(ctx, "John", "John@Example.com", "")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := store.Clients().Upsert(ctx, "Johnny", "john@example.com", "555-0100")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same email must resolve to one client: %s vs %s", first.ID.Hex(), second.ID.Hex())
	}
	if second.Name != "Johnny" || second.Phone != "555-0100" {
		t.Fatalf("fields not refreshed: %+v", second)
	}
	if second.Email != "john@example.com" {
		t.Fatalf("email not normalized: %q", second.Email)
	}

	total, err := store.Clients().Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one client, got %d", total)
	}
}

func TestMongo_ViewingSlotUniqueness(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()

	p := seedProperty(t, store, "loft", 1000)
	client, err := store.Clients().Upsert(ctx, "Sara", "sara@example.com", "")
	if err != nil {
		t.Fatalf("upsert client: %v", err)
	}

	date := time.Now().Add(72 * time.Hour).Truncate(24 * time.Hour)
	v1 := domain.Viewing{PropertyID: p.ID, ClientID: client.ID, Date: date, Time: "14:30", Status: domain.ViewingScheduled}
	if err := store.Viewings().Insert(ctx, &v1); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	dup := domain.Viewing{PropertyID: p.ID, ClientID: client.ID, Date: date, Time: "14:30", Status: domain.ViewingScheduled}
	err = store.Viewings().Insert(ctx, &dup)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate slot: got %v, want conflict", err)
	}

	// cancelling frees the slot for a new booking
	if err := store.Viewings().SetStatus(ctx, v1.ID, domain.ViewingCancelled, nil); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	rebook := domain.Viewing{PropertyID: p.ID, ClientID: client.ID, Date: date, Time: "14:30", Status: domain.ViewingScheduled}
	if err := store.Viewings().Insert(ctx, &rebook); err != nil {
		t.Fatalf("rebooking cancelled slot: %v", err)
	}

	busy, err := store.Viewings().ActiveExists(ctx, p.ID, date, "14:30")
	if err != nil {
		t.Fatalf("active exists: %v", err)
	}
	if !busy {
		t.Fatal("rebooked slot must be active")
	}
}

func TestMongo_InquiryViewsJoin(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()

	p := seedProperty(t, store, "villa", 2500000)
	client, err := store.Clients().Upsert(ctx, "John", "john@example.com", "")
	if err != nil {
		t.Fatalf("upsert client: %v", err)
	}

	in := domain.Inquiry{ClientID: client.ID, PropertyID: p.ID, Message: "Still available?"}
	if err := store.Inquiries().Insert(ctx, &in); err != nil {
		t.Fatalf("insert inquiry: %v", err)
	}

	view, err := store.Inquiries().GetView(ctx, in.ID)
	if err != nil {
		t.Fatalf("get view: %v", err)
	}
	if view.Client.Email != "john@example.com" || view.Property.Title != "villa" {
		t.Fatalf("join: %+v", view)
	}

	views, total, err := store.Inquiries().ListViews(ctx, domain.NewPage(1, 10, 10))
	if err != nil {
		t.Fatalf("list views: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("total=%d len=%d", total, len(views))
	}
}
