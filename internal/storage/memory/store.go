// Package memory is the reference Inventory/Ledger backend: everything lives
// in process, guarded by a single RWMutex. Reads take the read lock; Commit
// takes the write lock so the conflict re-check and the append are one
// exclusive section.
package memory

import (
	"context"
	"sync"

	"stay_booking/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	hotels   []domain.Hotel
	rooms    []domain.Room
	bookings []domain.Booking
	byID     map[string]int // booking id -> index into bookings
}

func New() *Store {
	return &Store{byID: map[string]int{}}
}

// Load replaces the inventory. Bookings passed in are appended to the ledger
// as-is (used for seed data).
func (s *Store) Load(hotels []domain.Hotel, rooms []domain.Room, bookings []domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels = append([]domain.Hotel(nil), hotels...)
	s.rooms = append([]domain.Room(nil), rooms...)
	for _, b := range bookings {
		s.byID[b.ID] = len(s.bookings)
		s.bookings = append(s.bookings, b)
	}
}

// ---- Inventory ----

func (s *Store) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Hotel(nil), s.hotels...), nil
}

func (s *Store) FindHotel(ctx context.Context, id string) (domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (s *Store) ListRooms(ctx context.Context, hotelID string) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Room
	for _, r := range s.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) FindRoom(ctx context.Context, hotelID, roomID string) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == roomID && r.HotelID == hotelID {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrNotFound
}

func (s *Store) SetRoomAvailable(ctx context.Context, roomID string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rooms {
		if s.rooms[i].ID == roomID {
			s.rooms[i].Available = available
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- Ledger ----

func (s *Store) Commit(ctx context.Context, b domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conflicts []domain.Stay
	for _, existing := range s.bookings {
		if existing.RoomID == b.RoomID && existing.Status.Active() && existing.Stay.Overlaps(b.Stay) {
			conflicts = append(conflicts, existing.Stay)
		}
	}
	if len(conflicts) > 0 {
		return &domain.ConflictError{RoomID: b.RoomID, Ranges: conflicts}
	}

	s.byID[b.ID] = len(s.bookings)
	s.bookings = append(s.bookings, b)
	return nil
}

func (s *Store) Cancel(ctx context.Context, id string) (domain.Booking, domain.BookingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return domain.Booking{}, "", domain.ErrNotFound
	}
	prev := s.bookings[i].Status
	if prev == domain.StatusCancelled {
		return domain.Booking{}, "", domain.ErrAlreadyCancelled
	}
	s.bookings[i].Status = domain.StatusCancelled
	return s.bookings[i], prev, nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return s.bookings[i], nil
}

func (s *Store) List(ctx context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Booking(nil), s.bookings...), nil
}

func (s *Store) ActiveForRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.RoomID == roomID && b.Status.Active() {
			out = append(out, b)
		}
	}
	return out, nil
}
