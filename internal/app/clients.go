package app

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

type ClientService struct {
	clients domain.ClientRepository
	now     func() time.Time
}

func NewClientService(c domain.ClientRepository) *ClientService {
	return &ClientService{clients: c, now: time.Now}
}

func (s *ClientService) List(ctx context.Context, search string, pg domain.Page) ([]domain.Client, domain.Pagination, error) {
	items, total, err := s.clients.List(ctx, search, pg)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return items, domain.NewPagination(pg, total), nil
}

func (s *ClientService) Get(ctx context.Context, id string) (domain.Client, error) {
	clientID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Client{}, domain.NotFoundError{Resource: "Client"}
	}
	return s.clients.Get(ctx, clientID)
}

// Delete removes the client record. Inquiries and viewings referencing it
// are left in place; their joined views simply lose the client summary.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	clientID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFoundError{Resource: "Client"}
	}
	return s.clients.Delete(ctx, clientID)
}

// Stats computes the dashboard aggregate fresh on every call: total clients,
// clients from the rolling last 30 days, and clients since the first of the
// current month.
func (s *ClientService) Stats(ctx context.Context) (domain.ClientStats, error) {
	now := s.now()
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total, err := s.clients.Count(ctx, nil)
	if err != nil {
		return domain.ClientStats{}, err
	}
	recent, err := s.clients.Count(ctx, &thirtyDaysAgo)
	if err != nil {
		return domain.ClientStats{}, err
	}
	thisMonth, err := s.clients.Count(ctx, &startOfMonth)
	if err != nil {
		return domain.ClientStats{}, err
	}

	return domain.ClientStats{
		TotalClients:     total,
		RecentClients:    recent,
		ThisMonthClients: thisMonth,
	}, nil
}
