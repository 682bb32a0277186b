package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stay_booking/internal/adapters/observability"
	"stay_booking/internal/domain"
)

const statsCacheKey = "stats"

// BookingService is the transaction manager: it validates a commit request,
// prices the stay, and hands the ledger a fully-built booking. The ledger's
// Commit runs the conflict re-check and the append atomically, so a race
// between two overlapping commits resolves to exactly one winner.
type BookingService struct {
	inv      domain.Inventory
	ledger   domain.Ledger
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewBookingService(inv domain.Inventory, ledger domain.Ledger, cache domain.Cache, ttl time.Duration) *BookingService {
	return &BookingService{inv: inv, ledger: ledger, cache: cache, cacheTTL: ttl}
}

type CommitRequest struct {
	HotelID    string
	RoomID     string
	GuestName  string
	GuestEmail string
	Stay       domain.Stay
}

func (s *BookingService) Commit(ctx context.Context, req CommitRequest) (domain.Booking, error) {
	if _, err := s.inv.FindHotel(ctx, req.HotelID); err != nil {
		observability.ObserveBooking("rejected")
		return domain.Booking{}, err
	}
	room, err := s.inv.FindRoom(ctx, req.HotelID, req.RoomID)
	if err != nil {
		observability.ObserveBooking("rejected")
		return domain.Booking{}, err
	}
	if !room.Available {
		observability.ObserveBooking("rejected")
		return domain.Booking{}, domain.ErrUnavailable
	}
	if !req.Stay.Valid() {
		observability.ObserveBooking("rejected")
		return domain.Booking{}, domain.ErrInvalidRange
	}

	b := domain.Booking{
		ID:         uuid.NewString(),
		HotelID:    req.HotelID,
		RoomID:     req.RoomID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		Stay:       req.Stay,
		TotalPrice: room.PricePerNight * float64(req.Stay.Nights()),
		Status:     domain.StatusConfirmed,
	}

	// The ledger re-checks conflicts inside its own critical section even
	// though an availability call may have inspected this room already: the
	// gap between check and commit is exactly where races live.
	if err := s.ledger.Commit(ctx, b); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.ObserveBooking("conflict")
		} else {
			observability.ObserveBooking("error")
		}
		return domain.Booking{}, err
	}

	s.invalidateStats(ctx)
	observability.ObserveBooking("confirmed")
	log.Info().Str("booking_id", b.ID).Str("room_id", b.RoomID).
		Str("stay", b.Stay.String()).Float64("total", b.TotalPrice).
		Msg("booking committed")
	return b, nil
}

func (s *BookingService) Cancel(ctx context.Context, bookingID string) (domain.CancelResult, error) {
	b, prev, err := s.ledger.Cancel(ctx, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyCancelled):
			observability.ObserveCancel("already_cancelled")
		case errors.Is(err, domain.ErrNotFound):
			observability.ObserveCancel("not_found")
		}
		return domain.CancelResult{}, err
	}

	// Advisory only: availability is driven by active bookings, so a failed
	// flag reset must not fail the cancellation.
	if err := s.inv.SetRoomAvailable(ctx, b.RoomID, true); err != nil {
		log.Warn().Str("room_id", b.RoomID).Err(err).Msg("room flag reset failed")
	}

	s.invalidateStats(ctx)
	observability.ObserveCancel("cancelled")
	log.Info().Str("booking_id", bookingID).Str("previous_status", string(prev)).Msg("booking cancelled")
	return domain.CancelResult{
		BookingID:      bookingID,
		PreviousStatus: prev,
		RefundAmount:   b.TotalPrice,
	}, nil
}

func (s *BookingService) Get(ctx context.Context, bookingID string) (domain.BookingView, error) {
	b, err := s.ledger.Get(ctx, bookingID)
	if err != nil {
		return domain.BookingView{}, err
	}
	view := domain.BookingView{Booking: b}
	if h, err := s.inv.FindHotel(ctx, b.HotelID); err == nil {
		view.Hotel = &h
	}
	if r, err := s.inv.FindRoom(ctx, b.HotelID, b.RoomID); err == nil {
		view.Room = &r
	}
	return view, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.ledger.List(ctx)
}

const popularHotelLimit = 5

func (s *BookingService) Statistics(ctx context.Context) (domain.Statistics, error) {
	if s.cache != nil {
		var cached domain.Statistics
		if ok, _ := s.cache.Get(ctx, statsCacheKey, &cached); ok {
			return cached, nil
		}
	}

	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	var stats domain.Statistics
	activeByHotel := map[string]int{}
	for _, b := range bookings {
		stats.Total++
		switch b.Status {
		case domain.StatusConfirmed:
			stats.Confirmed++
			stats.TotalRevenue += b.TotalPrice
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusCancelled:
			stats.Cancelled++
		}
		if b.Status.Active() {
			activeByHotel[b.HotelID]++
		}
	}

	for id, n := range activeByHotel {
		entry := domain.HotelBookingCount{HotelID: id, Count: n}
		if h, err := s.inv.FindHotel(ctx, id); err == nil {
			entry.HotelName = h.Name
		}
		stats.PopularHotels = append(stats.PopularHotels, entry)
	}
	sort.Slice(stats.PopularHotels, func(i, j int) bool {
		a, b := stats.PopularHotels[i], stats.PopularHotels[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.HotelID < b.HotelID
	})
	if len(stats.PopularHotels) > popularHotelLimit {
		stats.PopularHotels = stats.PopularHotels[:popularHotelLimit]
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, statsCacheKey, stats, int(s.cacheTTL.Seconds()))
	}
	return stats, nil
}

func (s *BookingService) invalidateStats(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, statsCacheKey)
	}
}
