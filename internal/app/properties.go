package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

// ImageUpload is one decoded multipart file.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// PropertyInput carries the already-coerced fields of a create/edit request.
// Handlers normalize strings to numbers up front; nothing unparsed gets here.
type PropertyInput struct {
	Title       string
	Description string
	Price       float64
	Type        string
	Location    string
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Amenities   []string
}

type PropertyService struct {
	repo   domain.PropertyRepository
	images domain.ImageStore
	cache  domain.Cache
	ttl    time.Duration
}

func NewPropertyService(r domain.PropertyRepository, img domain.ImageStore, c domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{repo: r, images: img, cache: c, ttl: ttl}
}

func (s *PropertyService) List(ctx context.Context, pg domain.Page) ([]domain.Property, domain.Pagination, error) {
	items, total, err := s.repo.List(ctx, pg)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return items, domain.NewPagination(pg, total), nil
}

func (s *PropertyService) Search(ctx context.Context, f domain.PropertyFilter, pg domain.Page) ([]domain.Property, domain.Pagination, error) {
	items, total, err := s.repo.Search(ctx, f, pg)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return items, domain.NewPagination(pg, total), nil
}

func cacheKey(id bson.ObjectID) string { return fmt.Sprintf("property:%s", id.Hex()) }

// Get is read-through cached; cache failures never fail the request.
func (s *PropertyService) Get(ctx context.Context, id bson.ObjectID) (domain.Property, error) {
	key := cacheKey(id)
	var p domain.Property
	if ok, _ := s.cache.Get(ctx, key, &p); ok {
		return p, nil
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Set(ctx, key, p, int(s.ttl.Seconds()))
	return p, nil
}

// Create validates the input, uploads each image best-effort (one failed
// upload is logged and skipped, the rest proceed), then persists the listing.
func (s *PropertyService) Create(ctx context.Context, in PropertyInput, uploads []ImageUpload) (domain.Property, error) {
	p := propertyFromInput(in)
	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}

	p.Images = s.uploadAll(ctx, uploads)

	if err := s.repo.Insert(ctx, &p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// Update replaces the listing's fields; keptImages are the previous URLs the
// caller wants to keep. Dropped URLs are deleted from the image store
// best-effort after new uploads succeed; a store failure never fails the edit.
func (s *PropertyService) Update(ctx context.Context, id bson.ObjectID, in PropertyInput, keptImages []string, uploads []ImageUpload) (domain.Property, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}

	p := propertyFromInput(in)
	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}
	p.ID = id
	p.Images = append(slices.Clone(keptImages), s.uploadAll(ctx, uploads)...)

	var stale []string
	for _, img := range existing.Images {
		if !slices.Contains(p.Images, img) {
			stale = append(stale, img)
		}
	}
	if len(stale) > 0 {
		if err := s.images.DeleteMany(ctx, stale); err != nil {
			log.Error().Err(err).Str("property", id.Hex()).Msg("stale image cleanup failed")
		}
	}

	updated, err := s.repo.Update(ctx, &p)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Del(ctx, cacheKey(id))
	return updated, nil
}

func (s *PropertyService) Archive(ctx context.Context, id bson.ObjectID) (domain.Property, error) {
	p, err := s.repo.Archive(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Del(ctx, cacheKey(id))
	return p, nil
}

// Delete permanently removes the listing. Its images are deleted from the
// store first, best-effort: a store failure is logged and the property is
// removed regardless.
func (s *PropertyService) Delete(ctx context.Context, id bson.ObjectID) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if len(p.Images) > 0 {
		if err := s.images.DeleteMany(ctx, p.Images); err != nil {
			log.Error().Err(err).Str("property", id.Hex()).Msg("image cleanup on delete failed")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, cacheKey(id))
	return nil
}

func (s *PropertyService) uploadAll(ctx context.Context, uploads []ImageUpload) []string {
	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.images.Upload(ctx, u.Data, u.ContentType)
		if err != nil {
			log.Error().Err(err).Msg("image upload failed; continuing with remaining files")
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func propertyFromInput(in PropertyInput) domain.Property {
	amenities := make([]string, 0, len(in.Amenities))
	for _, a := range in.Amenities {
		if t := strings.TrimSpace(a); t != "" {
			amenities = append(amenities, t)
		}
	}
	return domain.Property{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Type:        domain.PropertyType(in.Type),
		Location:    strings.TrimSpace(in.Location),
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Amenities:   amenities,
	}
}
