package app_test

import (
	"context"
	"strings"
	"testing"

	"stay_booking/internal/app"
	"stay_booking/internal/domain"
)

func TestToolbox_Dispatch(t *testing.T) {
	store := newStore()
	tools := newToolbox(store)
	ctx := context.Background()

	res, err := tools.Invoke(ctx, app.ToolCall{
		Name:   app.ToolSearchHotels,
		Search: &domain.SearchFilters{Location: "Chicago"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Hotels) != 1 || res.Hotels[0].ID != "h3" {
		t.Fatalf("hotels: %v", hotelIDs(res.Hotels))
	}

	res, err = tools.Invoke(ctx, app.ToolCall{Name: app.ToolHotelDetails, HotelID: "h1"})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if res.Hotel == nil || res.Hotel.ID != "h1" || len(res.Rooms) != 2 {
		t.Fatalf("details: %+v", res)
	}

	res, err = tools.Invoke(ctx, app.ToolCall{Name: app.ToolBookHotel, Book: &app.CommitRequest{
		HotelID: "h1", RoomID: "r11", GuestName: "A", GuestEmail: "a@example.com",
		Stay: st(t, "2026-03-10", "2026-03-12"),
	}})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	bookingID := res.Booking.ID

	res, err = tools.Invoke(ctx, app.ToolCall{Name: app.ToolBookingDetails, BookingID: bookingID})
	if err != nil || res.View.Booking.ID != bookingID {
		t.Fatalf("booking details: %+v, %v", res, err)
	}

	res, err = tools.Invoke(ctx, app.ToolCall{Name: app.ToolListBookings})
	if err != nil || len(res.Bookings) != 1 {
		t.Fatalf("list: %+v, %v", res, err)
	}

	res, err = tools.Invoke(ctx, app.ToolCall{Name: app.ToolBookingStats})
	if err != nil || res.Stats.Confirmed != 1 {
		t.Fatalf("stats: %+v, %v", res, err)
	}

	res, err = tools.Invoke(ctx, app.ToolCall{Name: app.ToolCancelBooking, BookingID: bookingID})
	if err != nil || res.Cancel.BookingID != bookingID {
		t.Fatalf("cancel: %+v, %v", res, err)
	}
}

func TestToolbox_BadCalls(t *testing.T) {
	tools := newToolbox(newStore())
	ctx := context.Background()

	if _, err := tools.Invoke(ctx, app.ToolCall{Name: "teleport"}); err == nil ||
		!strings.Contains(err.Error(), "unknown tool") {
		t.Fatalf("unknown tool: %v", err)
	}
	if _, err := tools.Invoke(ctx, app.ToolCall{Name: app.ToolSearchHotels}); err == nil {
		t.Fatal("search without filters must fail")
	}
	if _, err := tools.Invoke(ctx, app.ToolCall{Name: app.ToolBookHotel}); err == nil {
		t.Fatal("book without arguments must fail")
	}
	if _, err := tools.Invoke(ctx, app.ToolCall{Name: app.ToolCheckAvailability}); err == nil {
		t.Fatal("availability without arguments must fail")
	}
}
