package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"stay_booking/internal/domain"
)

// Repo implements the Inventory and Ledger ports on MySQL. Commit atomicity
// comes from a transaction that locks the room's active bookings before the
// overlap check, so two racing commits serialize at the database.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- Inventory write paths (loading/seeding only; not part of the port) ----

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	amen, _ := json.Marshal(h.Amenities)
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.Location, h.Rating, string(amen), h.PricePerNight, h.RoomCount, h.Description)
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	amen, _ := json.Marshal(rm.Amenities)
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID, rm.HotelID, rm.Type, rm.Capacity, rm.PricePerNight, string(amen), rm.Available)
	return err
}

// ---- Inventory read paths ----

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) FindHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, findHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListRooms(ctx context.Context, hotelID string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) FindRoom(ctx context.Context, hotelID, roomID string) (domain.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, findRoomSQL, roomID, hotelID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, err
}

func (r *Repo) SetRoomAvailable(ctx context.Context, roomID string, available bool) error {
	res, err := r.db.ExecContext(ctx, setRoomAvailableSQL, available, roomID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// zero rows can also mean "already that value"; verify existence
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, roomID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// ---- Ledger ----

func (r *Repo) Commit(ctx context.Context, b domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, selectActiveForUpdateSQL, b.RoomID)
	if err != nil {
		return err
	}
	var conflicts []domain.Stay
	for rows.Next() {
		var in, out time.Time
		if err := rows.Scan(&in, &out); err != nil {
			rows.Close()
			return err
		}
		existing := domain.NewStay(in, out)
		if existing.Overlaps(b.Stay) {
			conflicts = append(conflicts, existing)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if len(conflicts) > 0 {
		return &domain.ConflictError{RoomID: b.RoomID, Ranges: conflicts}
	}

	if _, err := tx.ExecContext(ctx, insertBookingSQL,
		b.ID, b.HotelID, b.RoomID, b.GuestName, b.GuestEmail,
		b.Stay.CheckIn, b.Stay.CheckOut, b.TotalPrice, string(b.Status)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) Cancel(ctx context.Context, id string) (domain.Booking, domain.BookingStatus, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, "", err
	}
	defer tx.Rollback()

	b, err := scanBooking(tx.QueryRowContext(ctx, getBookingForUpdateSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, "", domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, "", err
	}
	prev := b.Status
	if prev == domain.StatusCancelled {
		return domain.Booking{}, "", domain.ErrAlreadyCancelled
	}

	if _, err := tx.ExecContext(ctx, cancelBookingSQL, id); err != nil {
		return domain.Booking{}, "", err
	}
	if err := tx.Commit(); err != nil {
		return domain.Booking{}, "", err
	}
	b.Status = domain.StatusCancelled
	return b, prev, nil
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

func (r *Repo) List(ctx context.Context) ([]domain.Booking, error) {
	return r.queryBookings(ctx, listBookingsSQL)
}

func (r *Repo) ActiveForRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	return r.queryBookings(ctx, activeForRoomSQL, roomID)
}

func (r *Repo) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ---- scanning ----

type scanner interface{ Scan(dest ...any) error }

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var amen []byte
	if err := s.Scan(&h.ID, &h.Name, &h.Location, &h.Rating, &amen, &h.PricePerNight, &h.RoomCount, &h.Description); err != nil {
		return domain.Hotel{}, err
	}
	if len(amen) > 0 {
		_ = json.Unmarshal(amen, &h.Amenities)
	}
	return h, nil
}

func scanRoom(s scanner) (domain.Room, error) {
	var rm domain.Room
	var amen []byte
	if err := s.Scan(&rm.ID, &rm.HotelID, &rm.Type, &rm.Capacity, &rm.PricePerNight, &amen, &rm.Available); err != nil {
		return domain.Room{}, err
	}
	if len(amen) > 0 {
		_ = json.Unmarshal(amen, &rm.Amenities)
	}
	return rm, nil
}

func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	var in, out time.Time
	var status string
	if err := s.Scan(&b.ID, &b.HotelID, &b.RoomID, &b.GuestName, &b.GuestEmail, &in, &out, &b.TotalPrice, &status); err != nil {
		return domain.Booking{}, err
	}
	b.Stay = domain.NewStay(in, out)
	b.Status = domain.BookingStatus(status)
	return b, nil
}
