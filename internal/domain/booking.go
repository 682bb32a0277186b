package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Active bookings block availability; cancelled ones never do.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

const DateLayout = "2006-01-02"

// Stay is a half-open date range [CheckIn, CheckOut): the check-out day is
// not an occupied night. Both dates are UTC midnights.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStay(checkIn, checkOut time.Time) Stay {
	return Stay{CheckIn: day(checkIn), CheckOut: day(checkOut)}
}

func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := time.ParseInLocation(DateLayout, checkIn, time.UTC)
	if err != nil {
		return Stay{}, fmt.Errorf("check_in %q: %w", checkIn, err)
	}
	out, err := time.ParseInLocation(DateLayout, checkOut, time.UTC)
	if err != nil {
		return Stay{}, fmt.Errorf("check_out %q: %w", checkOut, err)
	}
	return Stay{CheckIn: in, CheckOut: out}, nil
}

func (s Stay) Valid() bool { return s.CheckOut.After(s.CheckIn) }

func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn) / (24 * time.Hour))
}

// Overlaps reports whether two half-open ranges intersect. A stay ending on
// day D never conflicts with one starting on day D.
func (s Stay) Overlaps(o Stay) bool {
	return s.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(s.CheckOut)
}

func (s Stay) String() string {
	return s.CheckIn.Format(DateLayout) + " to " + s.CheckOut.Format(DateLayout)
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Booking struct {
	ID         string
	HotelID    string
	RoomID     string
	GuestName  string
	GuestEmail string
	Stay       Stay
	TotalPrice float64
	Status     BookingStatus
}

// BookingView joins a booking with its hotel and room for read paths.
type BookingView struct {
	Booking Booking
	Hotel   *Hotel
	Room    *Room
}

type HotelBookingCount struct {
	HotelID   string
	HotelName string
	Count     int
}

type Statistics struct {
	Total         int
	Confirmed     int
	Pending       int
	Cancelled     int
	TotalRevenue  float64 // confirmed bookings only
	PopularHotels []HotelBookingCount
}

type CancelResult struct {
	BookingID      string
	PreviousStatus BookingStatus
	RefundAmount   float64
}
