package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stay_booking/internal/domain"
)

// SearchService filters the inventory by location, rating, price, and
// amenities. Results keep inventory insertion order; no ranking.
type SearchService struct {
	inv      domain.Inventory
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(inv domain.Inventory, cache domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{inv: inv, cache: cache, cacheTTL: ttl}
}

func (s *SearchService) Search(ctx context.Context, f domain.SearchFilters) ([]domain.Hotel, error) {
	key := searchKey(f)
	if s.cache != nil {
		var cached []domain.Hotel
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	hotels, err := s.inv.ListHotels(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if !matchLocation(h, f.Location) {
			continue
		}
		if h.Rating < f.MinRating {
			continue
		}
		if f.MaxPrice > 0 && h.PricePerNight > f.MaxPrice {
			continue
		}
		if !matchAmenities(h, f.Amenities) {
			continue
		}
		out = append(out, h)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// matchLocation is deliberately loose: the query can be a substring of the
// hotel's location, any comma-separated part of the query can be, or the
// hotel's locality can be a substring of the query. Empty query matches all.
// Tolerates abbreviated input like "SF, CA" vs "San Francisco, CA".
func matchLocation(h domain.Hotel, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	loc := strings.ToLower(h.Location)
	if strings.Contains(loc, q) {
		return true
	}
	for _, part := range strings.Split(q, ",") {
		if p := strings.TrimSpace(part); p != "" && strings.Contains(loc, p) {
			return true
		}
	}
	return strings.Contains(q, strings.ToLower(strings.TrimSpace(h.Locality())))
}

// matchAmenities uses OR semantics across requested terms: one amenity tag
// containing one requested term (substring, case-insensitive) is enough.
// Inclusive by design; do not tighten to AND.
func matchAmenities(h domain.Hotel, requested []string) bool {
	terms := make([]string, 0, len(requested))
	for _, a := range requested {
		if t := strings.ToLower(strings.TrimSpace(a)); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return true
	}
	for _, term := range terms {
		for _, tag := range h.Amenities {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
	}
	return false
}

func searchKey(f domain.SearchFilters) string {
	return fmt.Sprintf("search:%s:%.1f:%.0f:%s",
		strings.ToLower(strings.TrimSpace(f.Location)),
		f.MinRating, f.MaxPrice,
		strings.ToLower(strings.Join(f.Amenities, ",")))
}
