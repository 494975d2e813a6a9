package httpserver

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

// Query parameters are coerced in one place. Optional numeric filters that
// fail to parse are treated as absent rather than poisoning the query.

func queryFloat(q url.Values, key string) *float64 {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryInt(q url.Values, key string) *int {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func queryString(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// parsePage reads page and limit with the caller's default limit;
// non-numeric or non-positive values fall back to the defaults.
func parsePage(q url.Values, defaultLimit int) domain.Page {
	page := 1
	if p := queryInt(q, "page"); p != nil {
		page = *p
	}
	limit := defaultLimit
	if l := queryInt(q, "limit"); l != nil {
		limit = *l
	}
	return domain.NewPage(page, limit, defaultLimit)
}

// parseFilter normalizes the flat search params into the typed filter.
// Amenities accept both repeated params and a comma-separated value.
func parseFilter(q url.Values) domain.PropertyFilter {
	f := domain.PropertyFilter{
		MinPrice:  queryFloat(q, "minPrice"),
		MaxPrice:  queryFloat(q, "maxPrice"),
		Location:  queryString(q, "location"),
		Bedrooms:  queryInt(q, "bedrooms"),
		Bathrooms: queryInt(q, "bathrooms"),
		MinArea:   queryFloat(q, "minArea"),
		MaxArea:   queryFloat(q, "maxArea"),
		Search:    queryString(q, "search"),
		Sort:      domain.SortKey(q.Get("sort")),
	}

	if t, ok := domain.ParsePropertyType(q.Get("type")); ok {
		f.Type = &t
	}

	var amenities []string
	for _, raw := range q["amenities"] {
		for _, a := range strings.Split(raw, ",") {
			if t := strings.TrimSpace(a); t != "" {
				amenities = append(amenities, t)
			}
		}
	}
	f.Amenities = amenities

	return f
}
