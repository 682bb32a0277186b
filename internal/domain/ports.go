package domain

import (
	"context"
	"time"
)

// Inventory owns Hotel and Room records. Read-only in the booking path; the
// room availability flag is the single advisory mutation (cancel resets it).
type Inventory interface {
	ListHotels(ctx context.Context) ([]Hotel, error)
	FindHotel(ctx context.Context, id string) (Hotel, error)
	ListRooms(ctx context.Context, hotelID string) ([]Room, error)
	FindRoom(ctx context.Context, hotelID, roomID string) (Room, error)
	SetRoomAvailable(ctx context.Context, roomID string, available bool) error
}

// Ledger owns the Booking lifecycle. Commit must run the conflict re-check
// and the append as one atomic unit per room: two overlapping commits for the
// same room must never both succeed.
type Ledger interface {
	Commit(ctx context.Context, b Booking) error
	Cancel(ctx context.Context, id string) (Booking, BookingStatus, error)
	Get(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context) ([]Booking, error)
	ActiveForRoom(ctx context.Context, roomID string) ([]Booking, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type DateExtraction struct {
	Stay       Stay
	Confidence Confidence
	Method     string
	Details    string
}

type SearchFilters struct {
	Location  string
	MinRating float64
	MaxPrice  float64 // 0 means unbounded
	Amenities []string
}

type Intent struct {
	HasHotelIntent bool
	Filters        SearchFilters
	Response       string // conversational reply when no hotel intent
}

// DateExtractor and IntentClassifier are the external text-understanding
// collaborators. Failures surface as *UpstreamError; the orchestrator never
// propagates them past its own fallbacks.
type DateExtractor interface {
	ExtractDates(ctx context.Context, query string, today time.Time) (DateExtraction, error)
}

type IntentClassifier interface {
	Classify(ctx context.Context, query string) (Intent, error)
}
