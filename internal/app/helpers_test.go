package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stay_booking/internal/app"
	"stay_booking/internal/domain"
	"stay_booking/internal/storage/memory"
)

// ---- fixtures ----

func newStore() *memory.Store {
	s := memory.New()
	s.Load(
		[]domain.Hotel{
			{ID: "h1", Name: "Harbor Light Hotel", Location: "San Francisco, CA", Rating: 4.4,
				Amenities: []string{"WiFi", "Beach Access", "Pool"}, PricePerNight: 190, RoomCount: 2},
			{ID: "h2", Name: "Midtown Suites", Location: "New York, NY", Rating: 3.9,
				Amenities: []string{"WiFi", "Gym"}, PricePerNight: 250, RoomCount: 2},
			{ID: "h3", Name: "Lakeside Inn", Location: "Chicago, IL", Rating: 4.1,
				Amenities: []string{"WiFi", "Business Center"}, PricePerNight: 120, RoomCount: 1},
		},
		[]domain.Room{
			{ID: "r11", HotelID: "h1", Type: "Double", Capacity: 2, PricePerNight: 100, Amenities: []string{"WiFi"}, Available: true},
			{ID: "r12", HotelID: "h1", Type: "Suite", Capacity: 4, PricePerNight: 180, Amenities: []string{"WiFi", "Balcony"}, Available: true},
			{ID: "r21", HotelID: "h2", Type: "Double", Capacity: 2, PricePerNight: 140, Amenities: []string{"WiFi"}, Available: true},
			{ID: "r22", HotelID: "h2", Type: "Double", Capacity: 2, PricePerNight: 140, Amenities: []string{"WiFi"}, Available: false},
			{ID: "r31", HotelID: "h3", Type: "Single", Capacity: 1, PricePerNight: 80, Amenities: []string{"WiFi"}, Available: true},
		},
		nil,
	)
	return s
}

func newToolbox(store *memory.Store) *app.Toolbox {
	search := app.NewSearchService(store, nil, time.Minute)
	avail := app.NewAvailabilityService(store, store)
	booking := app.NewBookingService(store, store, nil, time.Minute)
	return app.NewToolbox(search, avail, booking)
}

func st(t *testing.T, checkIn, checkOut string) domain.Stay {
	t.Helper()
	s, err := domain.ParseStay(checkIn, checkOut)
	if err != nil {
		t.Fatalf("parse stay %s/%s: %v", checkIn, checkOut, err)
	}
	return s
}

func hotelIDs(hs []domain.Hotel) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.ID
	}
	return out
}

func roomIDs(rs []domain.Room) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

// ---- fakes ----

// fakeCache stores JSON so it can round-trip any value type.
type fakeCache struct {
	store map[string][]byte
	sets  int
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = raw
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels++
	return nil
}

type stubDates struct {
	ext domain.DateExtraction
	err error
}

func (s stubDates) ExtractDates(ctx context.Context, query string, today time.Time) (domain.DateExtraction, error) {
	return s.ext, s.err
}

type stubIntents struct {
	intent domain.Intent
	err    error
}

func (s stubIntents) Classify(ctx context.Context, query string) (domain.Intent, error) {
	return s.intent, s.err
}
