package app_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

// ---- fakes ----

type fakeProperties struct {
	props   map[bson.ObjectID]domain.Property
	getHits int
}

func newFakeProperties(ps ...domain.Property) *fakeProperties {
	f := &fakeProperties{props: map[bson.ObjectID]domain.Property{}}
	for _, p := range ps {
		f.props[p.ID] = p
	}
	return f
}

func (f *fakeProperties) Insert(ctx context.Context, p *domain.Property) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	f.props[p.ID] = *p
	return nil
}

func (f *fakeProperties) Get(ctx context.Context, id bson.ObjectID) (domain.Property, error) {
	f.getHits++
	p, ok := f.props[id]
	if !ok {
		return domain.Property{}, domain.NotFoundError{Resource: "Property"}
	}
	return p, nil
}

func (f *fakeProperties) Update(ctx context.Context, p *domain.Property) (domain.Property, error) {
	if _, ok := f.props[p.ID]; !ok {
		return domain.Property{}, domain.NotFoundError{Resource: "Property"}
	}
	f.props[p.ID] = *p
	return *p, nil
}

func (f *fakeProperties) Archive(ctx context.Context, id bson.ObjectID) (domain.Property, error) {
	p, ok := f.props[id]
	if !ok {
		return domain.Property{}, domain.NotFoundError{Resource: "Property"}
	}
	p.Archived = true
	f.props[id] = p
	return p, nil
}

func (f *fakeProperties) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := f.props[id]; !ok {
		return domain.NotFoundError{Resource: "Property"}
	}
	delete(f.props, id)
	return nil
}

func (f *fakeProperties) List(ctx context.Context, pg domain.Page) ([]domain.Property, int64, error) {
	out := make([]domain.Property, 0, len(f.props))
	for _, p := range f.props {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProperties) Search(ctx context.Context, filter domain.PropertyFilter, pg domain.Page) ([]domain.Property, int64, error) {
	return f.List(ctx, pg)
}

func (f *fakeProperties) Summary(ctx context.Context, id bson.ObjectID) (domain.PropertySummary, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return domain.PropertySummary{}, err
	}
	return domain.PropertySummary{ID: p.ID, Title: p.Title, Location: p.Location, Price: p.Price, Type: p.Type}, nil
}

type fakeClients struct {
	clients map[bson.ObjectID]domain.Client
	counts  map[bool]int64 // keyed on since==nil
	sinces  []*time.Time
}

func newFakeClients(cs ...domain.Client) *fakeClients {
	f := &fakeClients{clients: map[bson.ObjectID]domain.Client{}}
	for _, c := range cs {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClients) Upsert(ctx context.Context, name, email, phone string) (domain.Client, error) {
	normalized := domain.NormalizeEmail(email)
	for id, c := range f.clients {
		if c.Email == normalized {
			c.Name = name
			if phone != "" {
				c.Phone = phone
			}
			f.clients[id] = c
			return c, nil
		}
	}
	c := domain.Client{ID: bson.NewObjectID(), Name: name, Email: normalized, Phone: phone}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeClients) Get(ctx context.Context, id bson.ObjectID) (domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return domain.Client{}, domain.NotFoundError{Resource: "Client"}
	}
	return c, nil
}

func (f *fakeClients) List(ctx context.Context, search string, pg domain.Page) ([]domain.Client, int64, error) {
	out := make([]domain.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClients) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := f.clients[id]; !ok {
		return domain.NotFoundError{Resource: "Client"}
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeClients) Count(ctx context.Context, since *time.Time) (int64, error) {
	f.sinces = append(f.sinces, since)
	if f.counts != nil {
		return f.counts[since == nil], nil
	}
	return int64(len(f.clients)), nil
}

type fakeInquiries struct {
	inquiries map[bson.ObjectID]domain.Inquiry
	clients   *fakeClients
	props     *fakeProperties
}

func (f *fakeInquiries) Insert(ctx context.Context, in *domain.Inquiry) error {
	if f.inquiries == nil {
		f.inquiries = map[bson.ObjectID]domain.Inquiry{}
	}
	in.ID = bson.NewObjectID()
	f.inquiries[in.ID] = *in
	return nil
}

func (f *fakeInquiries) GetView(ctx context.Context, id bson.ObjectID) (domain.InquiryView, error) {
	in, ok := f.inquiries[id]
	if !ok {
		return domain.InquiryView{}, domain.NotFoundError{Resource: "Inquiry"}
	}
	view := domain.InquiryView{ID: in.ID, Message: in.Message, CreatedAt: in.CreatedAt}
	if c, err := f.clients.Get(ctx, in.ClientID); err == nil {
		view.Client = domain.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
	}
	if s, err := f.props.Summary(ctx, in.PropertyID); err == nil {
		view.Property = s
	}
	return view, nil
}

func (f *fakeInquiries) ListViews(ctx context.Context, pg domain.Page) ([]domain.InquiryView, int64, error) {
	out := make([]domain.InquiryView, 0, len(f.inquiries))
	for id := range f.inquiries {
		v, _ := f.GetView(ctx, id)
		out = append(out, v)
	}
	return out, int64(len(f.inquiries)), nil
}

func (f *fakeInquiries) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := f.inquiries[id]; !ok {
		return domain.NotFoundError{Resource: "Inquiry"}
	}
	delete(f.inquiries, id)
	return nil
}

type fakeViewings struct {
	viewings  map[bson.ObjectID]domain.Viewing
	insertErr error
}

func slotKey(propertyID bson.ObjectID, date time.Time, t string) string {
	return fmt.Sprintf("%s|%s|%s", propertyID.Hex(), date.Format("2006-01-02"), t)
}

func (f *fakeViewings) Insert(ctx context.Context, v *domain.Viewing) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.viewings == nil {
		f.viewings = map[bson.ObjectID]domain.Viewing{}
	}
	v.ID = bson.NewObjectID()
	f.viewings[v.ID] = *v
	return nil
}

func (f *fakeViewings) Get(ctx context.Context, id bson.ObjectID) (domain.Viewing, error) {
	v, ok := f.viewings[id]
	if !ok {
		return domain.Viewing{}, domain.NotFoundError{Resource: "Viewing"}
	}
	return v, nil
}

func (f *fakeViewings) GetView(ctx context.Context, id bson.ObjectID) (domain.ViewingView, error) {
	v, err := f.Get(ctx, id)
	if err != nil {
		return domain.ViewingView{}, err
	}
	return domain.ViewingView{
		ID: v.ID, Date: v.Date, Time: v.Time, Status: v.Status, Notes: v.Notes,
	}, nil
}

func (f *fakeViewings) ListViews(ctx context.Context) ([]domain.ViewingView, error) {
	out := make([]domain.ViewingView, 0, len(f.viewings))
	for id := range f.viewings {
		v, _ := f.GetView(ctx, id)
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeViewings) SetStatus(ctx context.Context, id bson.ObjectID, status domain.ViewingStatus, notes *string) error {
	v, ok := f.viewings[id]
	if !ok {
		return domain.NotFoundError{Resource: "Viewing"}
	}
	v.Status = status
	if notes != nil {
		v.Notes = *notes
	}
	f.viewings[id] = v
	return nil
}

func (f *fakeViewings) SetNotes(ctx context.Context, id bson.ObjectID, notes string) error {
	v, ok := f.viewings[id]
	if !ok {
		return domain.NotFoundError{Resource: "Viewing"}
	}
	v.Notes = notes
	f.viewings[id] = v
	return nil
}

func (f *fakeViewings) ActiveExists(ctx context.Context, propertyID bson.ObjectID, date time.Time, t string) (bool, error) {
	key := slotKey(propertyID, date, t)
	for _, v := range f.viewings {
		if v.Status != domain.ViewingCancelled && slotKey(v.PropertyID, v.Date, v.Time) == key {
			return true, nil
		}
	}
	return false, nil
}

type fakeImages struct {
	uploads   int
	failOn    int // 1-based upload index that fails; 0 means never
	deleted   []string
	deleteErr error
}

func (f *fakeImages) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	f.uploads++
	if f.failOn != 0 && f.uploads == f.failOn {
		return "", errors.New("upload failed")
	}
	return fmt.Sprintf("https://img.test/properties/%d.jpg", f.uploads), nil
}

func (f *fakeImages) DeleteMany(ctx context.Context, urls []string) error {
	f.deleted = append(f.deleted, urls...)
	return f.deleteErr
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.Property); ok {
		*d = v.(domain.Property)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}
