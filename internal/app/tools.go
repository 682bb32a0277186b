package app

import (
	"context"
	"fmt"

	"stay_booking/internal/domain"
)

// The operation set is fixed and known, so tool dispatch is a closed
// tagged-variant switch with statically typed arguments rather than a
// name-to-reflection lookup.

type ToolName string

const (
	ToolSearchHotels      ToolName = "search_hotels"
	ToolHotelDetails      ToolName = "get_hotel_details"
	ToolCheckAvailability ToolName = "check_availability"
	ToolBookHotel         ToolName = "book_hotel"
	ToolBookingDetails    ToolName = "get_booking_details"
	ToolCancelBooking     ToolName = "cancel_booking"
	ToolListBookings      ToolName = "list_all_bookings"
	ToolBookingStats      ToolName = "get_booking_statistics"
)

type AvailabilityArgs struct {
	HotelID string
	Stay    domain.Stay
	Guests  int
}

type ToolCall struct {
	Name         ToolName
	Search       *domain.SearchFilters // ToolSearchHotels
	HotelID      string                // ToolHotelDetails
	Availability *AvailabilityArgs     // ToolCheckAvailability
	Book         *CommitRequest        // ToolBookHotel
	BookingID    string                // ToolBookingDetails, ToolCancelBooking
}

type ToolResult struct {
	Hotels   []domain.Hotel
	Hotel    *domain.Hotel
	Rooms    []domain.Room
	Booking  *domain.Booking
	View     *domain.BookingView
	Bookings []domain.Booking
	Cancel   *domain.CancelResult
	Stats    *domain.Statistics
}

type Toolbox struct {
	search  *SearchService
	avail   *AvailabilityService
	booking *BookingService
}

func NewToolbox(search *SearchService, avail *AvailabilityService, booking *BookingService) *Toolbox {
	return &Toolbox{search: search, avail: avail, booking: booking}
}

func (t *Toolbox) Invoke(ctx context.Context, call ToolCall) (ToolResult, error) {
	switch call.Name {
	case ToolSearchHotels:
		if call.Search == nil {
			return ToolResult{}, fmt.Errorf("%s: missing filters", call.Name)
		}
		hotels, err := t.search.Search(ctx, *call.Search)
		return ToolResult{Hotels: hotels}, err

	case ToolHotelDetails:
		h, rooms, err := t.avail.HotelDetails(ctx, call.HotelID)
		if err != nil {
			return ToolResult{}, err
		}
		return ToolResult{Hotel: &h, Rooms: rooms}, nil

	case ToolCheckAvailability:
		if call.Availability == nil {
			return ToolResult{}, fmt.Errorf("%s: missing arguments", call.Name)
		}
		a := call.Availability
		rooms, err := t.avail.Resolve(ctx, a.HotelID, a.Stay, a.Guests)
		return ToolResult{Rooms: rooms}, err

	case ToolBookHotel:
		if call.Book == nil {
			return ToolResult{}, fmt.Errorf("%s: missing arguments", call.Name)
		}
		b, err := t.booking.Commit(ctx, *call.Book)
		if err != nil {
			return ToolResult{}, err
		}
		return ToolResult{Booking: &b}, nil

	case ToolBookingDetails:
		v, err := t.booking.Get(ctx, call.BookingID)
		if err != nil {
			return ToolResult{}, err
		}
		return ToolResult{View: &v}, nil

	case ToolCancelBooking:
		res, err := t.booking.Cancel(ctx, call.BookingID)
		if err != nil {
			return ToolResult{}, err
		}
		return ToolResult{Cancel: &res}, nil

	case ToolListBookings:
		bs, err := t.booking.List(ctx)
		return ToolResult{Bookings: bs}, err

	case ToolBookingStats:
		st, err := t.booking.Statistics(ctx)
		if err != nil {
			return ToolResult{}, err
		}
		return ToolResult{Stats: &st}, nil
	}
	return ToolResult{}, fmt.Errorf("unknown tool %q", call.Name)
}
