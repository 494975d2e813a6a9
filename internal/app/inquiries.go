package app

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

// SubmitInquiryInput is the public inquiry form. Phone is optional.
type SubmitInquiryInput struct {
	Name       string
	Email      string
	Phone      string
	PropertyID string
	Message    string
}

type InquiryService struct {
	inquiries  domain.InquiryRepository
	clients    domain.ClientRepository
	properties domain.PropertyRepository
}

func NewInquiryService(i domain.InquiryRepository, c domain.ClientRepository, p domain.PropertyRepository) *InquiryService {
	return &InquiryService{inquiries: i, clients: c, properties: p}
}

// Submit validates the form, verifies the property, upserts the client by
// normalized email, then records the inquiry. Nothing is created when the
// property does not resolve.
func (s *InquiryService) Submit(ctx context.Context, in SubmitInquiryInput) (domain.InquiryView, error) {
	if in.Name == "" || in.Email == "" || in.PropertyID == "" || in.Message == "" {
		return domain.InquiryView{}, domain.Invalid("Name, email, property, and message are required")
	}
	if !domain.ValidEmail(in.Email) {
		return domain.InquiryView{}, domain.Invalid("Please provide a valid email address")
	}
	message := strings.TrimSpace(in.Message)
	if len(message) > domain.MaxMessageLen {
		return domain.InquiryView{}, domain.Invalid("Message must be 1000 characters or less")
	}

	propertyID, err := bson.ObjectIDFromHex(in.PropertyID)
	if err != nil {
		return domain.InquiryView{}, domain.NotFoundError{Resource: "Property"}
	}
	if _, err := s.properties.Get(ctx, propertyID); err != nil {
		return domain.InquiryView{}, err
	}

	client, err := s.clients.Upsert(ctx, strings.TrimSpace(in.Name), in.Email, strings.TrimSpace(in.Phone))
	if err != nil {
		return domain.InquiryView{}, err
	}

	inquiry := domain.Inquiry{
		ClientID:   client.ID,
		PropertyID: propertyID,
		Message:    message,
	}
	if err := s.inquiries.Insert(ctx, &inquiry); err != nil {
		return domain.InquiryView{}, err
	}

	return s.inquiries.GetView(ctx, inquiry.ID)
}

// List returns inquiries joined with summaries, newest first.
func (s *InquiryService) List(ctx context.Context, pg domain.Page) ([]domain.InquiryView, domain.Pagination, error) {
	items, total, err := s.inquiries.ListViews(ctx, pg)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return items, domain.NewPagination(pg, total), nil
}

func (s *InquiryService) Delete(ctx context.Context, id string) error {
	inquiryID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFoundError{Resource: "Inquiry"}
	}
	return s.inquiries.Delete(ctx, inquiryID)
}
