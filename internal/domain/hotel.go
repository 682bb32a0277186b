package domain

type Hotel struct {
	ID            string
	Name          string
	Location      string
	Rating        float64
	Amenities     []string
	PricePerNight float64
	RoomCount     int
	Description   string
}

// Locality is the part of Location before the first comma, e.g.
// "San Francisco" for "San Francisco, CA". Search matches on it loosely.
func (h Hotel) Locality() string {
	for i := 0; i < len(h.Location); i++ {
		if h.Location[i] == ',' {
			return h.Location[:i]
		}
	}
	return h.Location
}

type Room struct {
	ID            string
	HotelID       string
	Type          string
	Capacity      int
	PricePerNight float64
	Amenities     []string
	Available     bool
}
