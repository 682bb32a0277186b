package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stay_booking/internal/app"
	"stay_booking/internal/domain"
)

type Handlers struct {
	Search  *app.SearchService
	Avail   *app.AvailabilityService
	Booking *app.BookingService
	Flow    *app.Orchestrator
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.searchHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/availability", h.checkAvailability)
	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings", h.listBookings)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)
	s.mux.Delete("/v1/bookings/{id}", h.cancelBooking)
	s.mux.Get("/v1/stats", h.stats)
	s.mux.Post("/v1/workflows", h.runWorkflow)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeDomainErr maps the typed booking outcomes onto HTTP statuses. All of
// them are expected results, not faults.
func writeDomainErr(w http.ResponseWriter, err error) {
	var ce *domain.ConflictError
	switch {
	case errors.As(err, &ce):
		writeProblem(w, http.StatusConflict, "Conflict", ce.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidRange):
		writeProblem(w, http.StatusBadRequest, "Invalid Range", err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeProblem(w, http.StatusConflict, "Unavailable", err.Error())
	case errors.Is(err, domain.ErrAlreadyCancelled):
		writeProblem(w, http.StatusConflict, "Already Cancelled", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// ---- wire shapes ----

type hotelDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Rating        float64  `json:"rating"`
	Amenities     []string `json:"amenities"`
	PricePerNight float64  `json:"price_per_night"`
	RoomCount     int      `json:"available_rooms"`
	Description   string   `json:"description"`
}

type roomDTO struct {
	ID            string   `json:"id"`
	HotelID       string   `json:"hotel_id"`
	Type          string   `json:"room_type"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	Available     bool     `json:"available"`
}

type bookingDTO struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotel_id"`
	RoomID     string  `json:"room_id"`
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
}

func toHotelDTO(h domain.Hotel) hotelDTO {
	return hotelDTO{ID: h.ID, Name: h.Name, Location: h.Location, Rating: h.Rating,
		Amenities: h.Amenities, PricePerNight: h.PricePerNight, RoomCount: h.RoomCount, Description: h.Description}
}

func toHotelDTOs(hs []domain.Hotel) []hotelDTO {
	out := make([]hotelDTO, len(hs))
	for i, h := range hs {
		out[i] = toHotelDTO(h)
	}
	return out
}

func toRoomDTOs(rs []domain.Room) []roomDTO {
	out := make([]roomDTO, len(rs))
	for i, r := range rs {
		out[i] = roomDTO{ID: r.ID, HotelID: r.HotelID, Type: r.Type, Capacity: r.Capacity,
			PricePerNight: r.PricePerNight, Amenities: r.Amenities, Available: r.Available}
	}
	return out
}

func toBookingDTO(b domain.Booking) bookingDTO {
	return bookingDTO{ID: b.ID, HotelID: b.HotelID, RoomID: b.RoomID,
		GuestName: b.GuestName, GuestEmail: b.GuestEmail,
		CheckIn:    b.Stay.CheckIn.Format(domain.DateLayout),
		CheckOut:   b.Stay.CheckOut.Format(domain.DateLayout),
		TotalPrice: b.TotalPrice, Status: string(b.Status),
	}
}

// ---- handlers ----

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.SearchFilters{Location: q.Get("location")}
	if v := q.Get("min_rating"); v != "" {
		mr, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid min_rating", "min_rating must be a number")
			return
		}
		f.MinRating = mr
	}
	if v := q.Get("max_price"); v != "" {
		mp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid max_price", "max_price must be a number")
			return
		}
		f.MaxPrice = mp
	}
	if v := q.Get("amenities"); v != "" {
		f.Amenities = strings.Split(v, ",")
	}

	hotels, err := h.Search.Search(r.Context(), f)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": toHotelDTOs(hotels), "count": len(hotels)})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, rooms, err := h.Avail.HotelDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotel": toHotelDTO(hotel), "available_rooms": toRoomDTOs(rooms)})
}

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stay, err := domain.ParseStay(q.Get("check_in"), q.Get("check_out"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Dates", "check_in and check_out must be YYYY-MM-DD")
		return
	}
	guests := 2
	if v := q.Get("guests"); v != "" {
		g, err := strconv.Atoi(v)
		if err != nil || g <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid guests", "guests must be a positive integer")
			return
		}
		guests = g
	}

	rooms, err := h.Avail.Resolve(r.Context(), chi.URLParam(r, "id"), stay, guests)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"hotel_id":        chi.URLParam(r, "id"),
		"check_in":        stay.CheckIn.Format(domain.DateLayout),
		"check_out":       stay.CheckOut.Format(domain.DateLayout),
		"guests":          guests,
		"available_rooms": toRoomDTOs(rooms),
	})
}

type createBookingRequest struct {
	HotelID    string `json:"hotel_id"`
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	stay, err := domain.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Dates", "check_in and check_out must be YYYY-MM-DD")
		return
	}

	b, err := h.Booking.Commit(r.Context(), app.CommitRequest{
		HotelID:    req.HotelID,
		RoomID:     req.RoomID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		Stay:       stay,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"booking_confirmation": toBookingDTO(b),
		"nights":               b.Stay.Nights(),
		"message":              "Booking confirmed! Your reservation ID is " + b.ID,
	})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Booking.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]bookingDTO, len(bs))
	for i, b := range bs {
		out[i] = toBookingDTO(b)
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": out})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	v, err := h.Booking.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	resp := map[string]any{"booking": toBookingDTO(v.Booking)}
	if v.Hotel != nil {
		resp["hotel"] = toHotelDTO(*v.Hotel)
	}
	if v.Room != nil {
		resp["room"] = toRoomDTOs([]domain.Room{*v.Room})[0]
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	res, err := h.Booking.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"booking_id":      res.BookingID,
		"previous_status": string(res.PreviousStatus),
		"new_status":      string(domain.StatusCancelled),
		"refund_amount":   res.RefundAmount,
		"message":         "Booking " + res.BookingID + " has been successfully cancelled",
	})
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Booking.Statistics(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	popular := make([]map[string]any, len(st.PopularHotels))
	for i, p := range st.PopularHotels {
		popular[i] = map[string]any{"hotel_id": p.HotelID, "hotel_name": p.HotelName, "booking_count": p.Count}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_bookings":      st.Total,
		"confirmed_bookings":  st.Confirmed,
		"pending_bookings":    st.Pending,
		"cancelled_bookings":  st.Cancelled,
		"total_revenue":       st.TotalRevenue,
		"most_popular_hotels": popular,
	})
}

type workflowRequest struct {
	Query           string `json:"query"`
	GuestName       string `json:"guest_name,omitempty"`
	GuestEmail      string `json:"guest_email,omitempty"`
	SelectedHotelID string `json:"selected_hotel_id,omitempty"`
	SelectedRoomID  string `json:"selected_room_id,omitempty"`
	Guests          int    `json:"guests,omitempty"`
}

func (h *Handlers) runWorkflow(w http.ResponseWriter, r *http.Request) {
	var req workflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Query", "query is required")
		return
	}

	res := h.Flow.Run(r.Context(), app.Request{
		Query:           req.Query,
		Guest:           app.GuestInfo{Name: req.GuestName, Email: req.GuestEmail},
		SelectedHotelID: req.SelectedHotelID,
		SelectedRoomID:  req.SelectedRoomID,
		Guests:          req.Guests,
	})

	resp := map[string]any{
		"state":   string(res.State),
		"hotels":  toHotelDTOs(res.Hotels),
		"message": res.Message,
		"trace":   res.Trace,
		"date_extraction": map[string]any{
			"check_in":   res.Dates.Stay.CheckIn.Format(domain.DateLayout),
			"check_out":  res.Dates.Stay.CheckOut.Format(domain.DateLayout),
			"confidence": string(res.Dates.Confidence),
			"method":     res.Dates.Method,
		},
	}
	if res.Booking != nil {
		resp["booking"] = toBookingDTO(*res.Booking)
	}
	writeJSON(w, http.StatusOK, resp)
}
