package app

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

// ScheduleViewingInput is the raw schedule request; ids and date arrive as
// strings and are validated here in a fixed order.
type ScheduleViewingInput struct {
	PropertyID string
	ClientID   string
	Date       string
	Time       string
	Notes      string
}

type ViewingService struct {
	viewings   domain.ViewingRepository
	properties domain.PropertyRepository
	clients    domain.ClientRepository
	now        func() time.Time
}

func NewViewingService(v domain.ViewingRepository, p domain.PropertyRepository, c domain.ClientRepository) *ViewingService {
	return &ViewingService{viewings: v, properties: p, clients: c, now: time.Now}
}

// parseViewingDate accepts the calendar-date form used by the booking UI and
// RFC 3339 as a fallback.
func parseViewingDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Schedule runs the validation sequence in order; the first failing check
// wins. On success the viewing is created as scheduled and returned joined
// with client and property summaries.
func (s *ViewingService) Schedule(ctx context.Context, in ScheduleViewingInput) (domain.ViewingView, error) {
	if in.PropertyID == "" || in.ClientID == "" || in.Date == "" || in.Time == "" {
		return domain.ViewingView{}, domain.Invalid("All fields are required")
	}

	date, err := parseViewingDate(in.Date)
	if err != nil {
		return domain.ViewingView{}, domain.Invalid("Invalid date format")
	}
	if date.Before(s.now()) {
		return domain.ViewingView{}, domain.Invalid("Viewing date must be in the future")
	}

	if !domain.ValidViewingTime(in.Time) {
		return domain.ViewingView{}, domain.Invalid("Invalid time format. Use HH:MM format")
	}

	propertyID, err := bson.ObjectIDFromHex(in.PropertyID)
	if err != nil {
		return domain.ViewingView{}, domain.NotFoundError{Resource: "Property"}
	}
	if _, err := s.properties.Get(ctx, propertyID); err != nil {
		return domain.ViewingView{}, err
	}

	clientID, err := bson.ObjectIDFromHex(in.ClientID)
	if err != nil {
		return domain.ViewingView{}, domain.NotFoundError{Resource: "Client"}
	}
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return domain.ViewingView{}, err
	}

	// Pre-check keeps the friendly 409 on the common path; the storage-level
	// unique index catches the race the check cannot.
	busy, err := s.viewings.ActiveExists(ctx, propertyID, date, in.Time)
	if err != nil {
		return domain.ViewingView{}, err
	}
	if busy {
		return domain.ViewingView{}, domain.ConflictError{Msg: "A viewing is already scheduled for this property at the specified date and time"}
	}

	v := domain.Viewing{
		PropertyID: propertyID,
		ClientID:   clientID,
		Date:       date,
		Time:       in.Time,
		Status:     domain.ViewingScheduled,
		Notes:      strings.TrimSpace(in.Notes),
	}
	if err := s.viewings.Insert(ctx, &v); err != nil {
		return domain.ViewingView{}, err
	}

	return s.viewings.GetView(ctx, v.ID)
}

func (s *ViewingService) List(ctx context.Context) ([]domain.ViewingView, error) {
	return s.viewings.ListViews(ctx)
}

func (s *ViewingService) Complete(ctx context.Context, id string, notes string) (domain.ViewingView, error) {
	return s.transition(ctx, id, domain.TransitionComplete, notes)
}

func (s *ViewingService) Cancel(ctx context.Context, id string, notes string) (domain.ViewingView, error) {
	return s.transition(ctx, id, domain.TransitionCancel, notes)
}

func (s *ViewingService) MarkNoShow(ctx context.Context, id string, notes string) (domain.ViewingView, error) {
	return s.transition(ctx, id, domain.TransitionNoShow, notes)
}

// transition loads the viewing, consults the single legality table, and
// persists the new state plus trimmed notes when supplied.
func (s *ViewingService) transition(ctx context.Context, id string, t domain.ViewingTransition, notes string) (domain.ViewingView, error) {
	viewingID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ViewingView{}, domain.NotFoundError{Resource: "Viewing"}
	}
	v, err := s.viewings.Get(ctx, viewingID)
	if err != nil {
		return domain.ViewingView{}, err
	}

	next, err := v.Status.Apply(t)
	if err != nil {
		return domain.ViewingView{}, err
	}

	var notesPtr *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		notesPtr = &trimmed
	}
	if err := s.viewings.SetStatus(ctx, viewingID, next, notesPtr); err != nil {
		return domain.ViewingView{}, err
	}
	return s.viewings.GetView(ctx, viewingID)
}

// AddNotes replaces the notes without touching status.
func (s *ViewingService) AddNotes(ctx context.Context, id string, notes string) (domain.ViewingView, error) {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return domain.ViewingView{}, domain.Invalid("Notes are required")
	}
	if len(notes) > domain.MaxMessageLen {
		return domain.ViewingView{}, domain.Invalid("Notes must be 1000 characters or less")
	}

	viewingID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.ViewingView{}, domain.NotFoundError{Resource: "Viewing"}
	}
	if _, err := s.viewings.Get(ctx, viewingID); err != nil {
		return domain.ViewingView{}, err
	}

	if err := s.viewings.SetNotes(ctx, viewingID, trimmed); err != nil {
		return domain.ViewingView{}, err
	}
	return s.viewings.GetView(ctx, viewingID)
}
