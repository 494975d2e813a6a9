package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PropertyRepository interface {
	Insert(ctx context.Context, p *Property) error
	Get(ctx context.Context, id bson.ObjectID) (Property, error)
	Update(ctx context.Context, p *Property) (Property, error)
	Archive(ctx context.Context, id bson.ObjectID) (Property, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context, pg Page) ([]Property, int64, error)
	Search(ctx context.Context, f PropertyFilter, pg Page) ([]Property, int64, error)
	Summary(ctx context.Context, id bson.ObjectID) (PropertySummary, error)
}

type ClientRepository interface {
	// Upsert atomically inserts-or-updates the client keyed on normalized
	// email: name and phone are refreshed, email never changes.
	Upsert(ctx context.Context, name, email, phone string) (Client, error)
	Get(ctx context.Context, id bson.ObjectID) (Client, error)
	List(ctx context.Context, search string, pg Page) ([]Client, int64, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// Count counts all clients, or those created at/after since when non-nil.
	Count(ctx context.Context, since *time.Time) (int64, error)
}

type InquiryRepository interface {
	Insert(ctx context.Context, in *Inquiry) error
	GetView(ctx context.Context, id bson.ObjectID) (InquiryView, error)
	ListViews(ctx context.Context, pg Page) ([]InquiryView, int64, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type ViewingRepository interface {
	// Insert persists a new viewing; a storage-level uniqueness violation on
	// the active (propertyId, date, time) slot surfaces as ErrConflict.
	Insert(ctx context.Context, v *Viewing) error
	Get(ctx context.Context, id bson.ObjectID) (Viewing, error)
	GetView(ctx context.Context, id bson.ObjectID) (ViewingView, error)
	ListViews(ctx context.Context) ([]ViewingView, error)
	// SetStatus persists the new status, and notes when non-nil.
	SetStatus(ctx context.Context, id bson.ObjectID, status ViewingStatus, notes *string) error
	SetNotes(ctx context.Context, id bson.ObjectID, notes string) error
	// ActiveExists reports whether a non-cancelled viewing occupies the slot.
	ActiveExists(ctx context.Context, propertyID bson.ObjectID, date time.Time, t string) (bool, error)
}

// ImageStore is the external image hosting collaborator.
type ImageStore interface {
	// Upload stores one image and returns its public URL.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	// DeleteMany removes the given URLs best-effort: a failure for one URL
	// must not stop attempts on the others. The aggregated error is
	// informational; callers treat it as non-fatal.
	DeleteMany(ctx context.Context, urls []string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
