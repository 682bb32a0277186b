package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"stay_booking/internal/domain"
	"stay_booking/internal/storage/memory"
)

func stay(t *testing.T, checkIn, checkOut string) domain.Stay {
	t.Helper()
	s, err := domain.ParseStay(checkIn, checkOut)
	if err != nil {
		t.Fatalf("parse stay: %v", err)
	}
	return s
}

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	memory.SeedDemo(s)
	return s
}

func TestSeedDemo(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	hotels, err := s.ListHotels(ctx)
	if err != nil || len(hotels) == 0 {
		t.Fatalf("hotels: %d, %v", len(hotels), err)
	}
	bookings, err := s.List(ctx)
	if err != nil || len(bookings) == 0 {
		t.Fatalf("bookings: %d, %v", len(bookings), err)
	}
	// Every seeded booking must reference real inventory.
	for _, b := range bookings {
		if _, err := s.FindHotel(ctx, b.HotelID); err != nil {
			t.Fatalf("booking %s: hotel %s: %v", b.ID, b.HotelID, err)
		}
		if _, err := s.FindRoom(ctx, b.HotelID, b.RoomID); err != nil {
			t.Fatalf("booking %s: room %s: %v", b.ID, b.RoomID, err)
		}
	}
}

func TestCommit_ConflictDetection(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	base := domain.Booking{
		ID: "t1", HotelID: "hotel_1", RoomID: "room_1_1",
		GuestName: "A", GuestEmail: "a@example.com",
		Stay: stay(t, "2026-05-10", "2026-05-13"), Status: domain.StatusConfirmed,
	}
	if err := s.Commit(ctx, base); err != nil {
		t.Fatalf("commit: %v", err)
	}

	overlap := base
	overlap.ID = "t2"
	overlap.Stay = stay(t, "2026-05-12", "2026-05-14")
	err := s.Commit(ctx, overlap)
	var ce *domain.ConflictError
	if !errors.As(err, &ce) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if ce.RoomID != "room_1_1" {
		t.Fatalf("conflict room %s", ce.RoomID)
	}

	adjacent := base
	adjacent.ID = "t3"
	adjacent.Stay = stay(t, "2026-05-13", "2026-05-15")
	if err := s.Commit(ctx, adjacent); err != nil {
		t.Fatalf("adjacent stay must commit: %v", err)
	}

	otherRoom := overlap
	otherRoom.ID = "t4"
	otherRoom.RoomID = "room_1_2"
	if err := s.Commit(ctx, otherRoom); err != nil {
		t.Fatalf("another room must commit: %v", err)
	}
}

// Overlapping commits racing on one room: exactly one may win.
func TestCommit_ConcurrentSingleWinner(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	st := stay(t, "2026-06-01", "2026-06-05")

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = s.Commit(ctx, domain.Booking{
				ID: fmt.Sprintf("race_%d", i), HotelID: "hotel_1", RoomID: "room_1_1",
				GuestName: "G", GuestEmail: "g@example.com",
				Stay: st, Status: domain.StatusConfirmed,
			})
		}(i)
	}
	close(start)
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != n-1 {
		t.Fatalf("wins=%d conflicts=%d, want 1/%d", wins, conflicts, n-1)
	}

	active, err := s.ActiveForRoom(ctx, "room_1_1")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	overlapping := 0
	for _, b := range active {
		if b.Stay.Overlaps(st) {
			overlapping++
		}
	}
	if overlapping != 1 {
		t.Fatalf("ledger holds %d overlapping bookings", overlapping)
	}
}

func TestCancel(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	b := domain.Booking{
		ID: "c1", HotelID: "hotel_1", RoomID: "room_1_1",
		GuestName: "A", GuestEmail: "a@example.com",
		Stay: stay(t, "2026-07-01", "2026-07-03"),
		TotalPrice: 260, Status: domain.StatusConfirmed,
	}
	if err := s.Commit(ctx, b); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, prev, err := s.Cancel(ctx, "c1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if prev != domain.StatusConfirmed || got.Status != domain.StatusCancelled || got.TotalPrice != 260 {
		t.Fatalf("cancel result: %+v, prev %s", got, prev)
	}

	if _, _, err := s.Cancel(ctx, "c1"); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("repeat cancel: %v", err)
	}
	if _, _, err := s.Cancel(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: %v", err)
	}

	// The cancelled record remains listed.
	if _, err := s.Get(ctx, "c1"); err != nil {
		t.Fatalf("get after cancel: %v", err)
	}
	// But the room is bookable again.
	rebook := b
	rebook.ID = "c2"
	if err := s.Commit(ctx, rebook); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestSetRoomAvailable(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if err := s.SetRoomAvailable(ctx, "room_1_1", false); err != nil {
		t.Fatalf("set: %v", err)
	}
	r, err := s.FindRoom(ctx, "hotel_1", "room_1_1")
	if err != nil || r.Available {
		t.Fatalf("room: %+v, %v", r, err)
	}
	if err := s.SetRoomAvailable(ctx, "ghost", false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown room: %v", err)
	}
}

func TestListHotels_ReturnsCopy(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	first, _ := s.ListHotels(ctx)
	first[0].Name = "mutated"
	second, _ := s.ListHotels(ctx)
	if second[0].Name == "mutated" {
		t.Fatal("ListHotels leaked internal slice")
	}
}

func TestActiveForRoom_SkipsCancelled(t *testing.T) {
	s := memory.New()
	s.Load(nil, nil, []domain.Booking{
		{ID: "a", RoomID: "r", Stay: domain.NewStay(
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)), Status: domain.StatusConfirmed},
		{ID: "b", RoomID: "r", Stay: domain.NewStay(
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)), Status: domain.StatusCancelled},
		{ID: "c", RoomID: "r", Stay: domain.NewStay(
			time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC)), Status: domain.StatusPending},
	})

	active, err := s.ActiveForRoom(context.Background(), "r")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active %d, want 2 (confirmed + pending)", len(active))
	}
	for _, b := range active {
		if b.Status == domain.StatusCancelled {
			t.Fatalf("cancelled booking leaked: %+v", b)
		}
	}
}
