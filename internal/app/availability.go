package app

import (
	"context"

	"stay_booking/internal/domain"
)

// AvailabilityService answers "which rooms of this hotel are free for this
// stay". The room availability flag and capacity are pre-filters; the
// authoritative signal is absence of overlapping active bookings.
type AvailabilityService struct {
	inv    domain.Inventory
	ledger domain.Ledger
}

func NewAvailabilityService(inv domain.Inventory, ledger domain.Ledger) *AvailabilityService {
	return &AvailabilityService{inv: inv, ledger: ledger}
}

func (s *AvailabilityService) Resolve(ctx context.Context, hotelID string, stay domain.Stay, guests int) ([]domain.Room, error) {
	if _, err := s.inv.FindHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	rooms, err := s.inv.ListRooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	var out []domain.Room
	for _, r := range rooms {
		if !r.Available || r.Capacity < guests {
			continue
		}
		active, err := s.ledger.ActiveForRoom(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		conflict := false
		for _, b := range active {
			if b.Stay.Overlaps(stay) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, r)
		}
	}
	return out, nil
}

// HotelDetails returns a hotel with its flag-available rooms (no date
// filtering; use Resolve for that).
func (s *AvailabilityService) HotelDetails(ctx context.Context, hotelID string) (domain.Hotel, []domain.Room, error) {
	h, err := s.inv.FindHotel(ctx, hotelID)
	if err != nil {
		return domain.Hotel{}, nil, err
	}
	rooms, err := s.inv.ListRooms(ctx, hotelID)
	if err != nil {
		return domain.Hotel{}, nil, err
	}
	var avail []domain.Room
	for _, r := range rooms {
		if r.Available {
			avail = append(avail, r)
		}
	}
	return h, avail, nil
}
