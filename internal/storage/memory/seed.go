package memory

import "stay_booking/internal/domain"

// SeedDemo loads the demo inventory: a small city mix plus a dense San
// Francisco cluster for beach-themed searches, and a handful of bookings so
// conflict paths are exercisable out of the box.
func SeedDemo(s *Store) {
	s.Load(demoHotels(), demoRooms(), demoBookings())
}

// DemoInventory exposes the demo hotels and rooms so other store backends can
// seed themselves through their own write paths.
func DemoInventory() ([]domain.Hotel, []domain.Room) {
	return demoHotels(), demoRooms()
}

func demoHotels() []domain.Hotel {
	return []domain.Hotel{
		{ID: "hotel_1", Name: "Grand Plaza Hotel", Location: "New York, NY", Rating: 4.5,
			Amenities: []string{"WiFi", "Pool", "Gym", "Restaurant", "Spa"}, PricePerNight: 250, RoomCount: 15,
			Description: "Luxurious hotel in the heart of Manhattan with stunning city views"},
		{ID: "hotel_2", Name: "Seaside Resort", Location: "Miami, FL", Rating: 4.2,
			Amenities: []string{"WiFi", "Beach Access", "Pool", "Restaurant", "Bar"}, PricePerNight: 180, RoomCount: 8,
			Description: "Beautiful beachfront resort with direct ocean access"},
		{ID: "hotel_3", Name: "Mountain View Lodge", Location: "Denver, CO", Rating: 4.0,
			Amenities: []string{"WiFi", "Fireplace", "Hiking Trails", "Restaurant"}, PricePerNight: 120, RoomCount: 12,
			Description: "Cozy mountain lodge perfect for nature lovers"},
		{ID: "hotel_4", Name: "Business Center Hotel", Location: "Chicago, IL", Rating: 4.3,
			Amenities: []string{"WiFi", "Business Center", "Gym", "Conference Rooms"}, PricePerNight: 200, RoomCount: 20,
			Description: "Modern business hotel ideal for corporate travelers"},
		{ID: "hotel_5", Name: "Historic Inn", Location: "Boston, MA", Rating: 4.1,
			Amenities: []string{"WiFi", "Historic Charm", "Restaurant", "Library"}, PricePerNight: 160, RoomCount: 6,
			Description: "Charming historic inn with old-world elegance"},
		{ID: "hotel_6", Name: "Ocean View Resort", Location: "San Francisco, CA", Rating: 4.4,
			Amenities: []string{"WiFi", "Beach Access", "Pool", "Restaurant", "Spa"}, PricePerNight: 190, RoomCount: 10,
			Description: "Beautiful oceanfront resort near Golden Gate Bridge with beach access"},
		{ID: "hotel_7", Name: "Bay Side Hotel", Location: "San Francisco, CA", Rating: 4.2,
			Amenities: []string{"WiFi", "Bay Views", "Restaurant", "Gym"}, PricePerNight: 170, RoomCount: 8,
			Description: "Modern hotel with stunning bay views, walking distance to beaches"},
		{ID: "hotel_8", Name: "Coastal Inn", Location: "San Francisco, CA", Rating: 4.0,
			Amenities: []string{"WiFi", "Beach Nearby", "Restaurant", "Parking"}, PricePerNight: 150, RoomCount: 12,
			Description: "Comfortable inn just 2 blocks from the beach, perfect for budget travelers"},
		{ID: "hotel_9", Name: "Budget Beach Motel", Location: "San Francisco, CA", Rating: 3.5,
			Amenities: []string{"WiFi", "Beach Access", "Parking"}, PricePerNight: 85, RoomCount: 15,
			Description: "Simple, clean motel with direct beach access at unbeatable prices"},
		{ID: "hotel_10", Name: "Surfer's Paradise Hostel", Location: "San Francisco, CA", Rating: 3.8,
			Amenities: []string{"WiFi", "Beach Nearby", "Shared Kitchen", "Lounge"}, PricePerNight: 75, RoomCount: 20,
			Description: "Friendly hostel just steps from the beach, perfect for budget travelers"},
		{ID: "hotel_11", Name: "Ocean Breeze Inn", Location: "San Francisco, CA", Rating: 3.7,
			Amenities: []string{"WiFi", "Beach View", "Restaurant"}, PricePerNight: 95, RoomCount: 10,
			Description: "Cozy inn with ocean views and easy beach access"},
	}
}

func demoRooms() []domain.Room {
	return []domain.Room{
		{ID: "room_1_1", HotelID: "hotel_1", Type: "Standard", Capacity: 2, PricePerNight: 250, Amenities: []string{"WiFi", "TV", "AC"}, Available: true},
		{ID: "room_1_2", HotelID: "hotel_1", Type: "Deluxe", Capacity: 3, PricePerNight: 350, Amenities: []string{"WiFi", "TV", "AC", "Mini Bar"}, Available: true},
		{ID: "room_1_3", HotelID: "hotel_1", Type: "Suite", Capacity: 4, PricePerNight: 500, Amenities: []string{"WiFi", "TV", "AC", "Mini Bar", "Living Room"}, Available: true},
		{ID: "room_2_1", HotelID: "hotel_2", Type: "Ocean View", Capacity: 2, PricePerNight: 180, Amenities: []string{"WiFi", "TV", "Balcony"}, Available: true},
		{ID: "room_2_2", HotelID: "hotel_2", Type: "Beach Suite", Capacity: 4, PricePerNight: 280, Amenities: []string{"WiFi", "TV", "Balcony", "Kitchenette"}, Available: true},
		{ID: "room_3_1", HotelID: "hotel_3", Type: "Cabin", Capacity: 2, PricePerNight: 120, Amenities: []string{"WiFi", "Fireplace"}, Available: true},
		{ID: "room_3_2", HotelID: "hotel_3", Type: "Family Cabin", Capacity: 6, PricePerNight: 200, Amenities: []string{"WiFi", "Fireplace", "Kitchenette"}, Available: true},
		{ID: "room_4_1", HotelID: "hotel_4", Type: "Business", Capacity: 1, PricePerNight: 200, Amenities: []string{"WiFi", "Desk", "TV"}, Available: true},
		{ID: "room_4_2", HotelID: "hotel_4", Type: "Executive", Capacity: 2, PricePerNight: 280, Amenities: []string{"WiFi", "Desk", "TV", "Meeting Area"}, Available: true},
		{ID: "room_5_1", HotelID: "hotel_5", Type: "Classic", Capacity: 2, PricePerNight: 160, Amenities: []string{"WiFi", "Antique Furniture"}, Available: true},
		{ID: "room_6_1", HotelID: "hotel_6", Type: "Ocean View", Capacity: 2, PricePerNight: 190, Amenities: []string{"WiFi", "TV", "Ocean View", "Balcony"}, Available: true},
		{ID: "room_6_2", HotelID: "hotel_6", Type: "Beach Suite", Capacity: 4, PricePerNight: 290, Amenities: []string{"WiFi", "TV", "Ocean View", "Balcony", "Kitchenette"}, Available: true},
		{ID: "room_7_1", HotelID: "hotel_7", Type: "Bay View", Capacity: 2, PricePerNight: 170, Amenities: []string{"WiFi", "TV", "Bay View"}, Available: true},
		{ID: "room_7_2", HotelID: "hotel_7", Type: "Premium Bay", Capacity: 3, PricePerNight: 220, Amenities: []string{"WiFi", "TV", "Bay View", "Mini Bar"}, Available: true},
		{ID: "room_8_1", HotelID: "hotel_8", Type: "Standard", Capacity: 2, PricePerNight: 150, Amenities: []string{"WiFi", "TV"}, Available: true},
		{ID: "room_8_2", HotelID: "hotel_8", Type: "Beach Side", Capacity: 4, PricePerNight: 180, Amenities: []string{"WiFi", "TV", "Beach View"}, Available: true},
		{ID: "room_9_1", HotelID: "hotel_9", Type: "Economy", Capacity: 2, PricePerNight: 85, Amenities: []string{"WiFi", "TV"}, Available: true},
		{ID: "room_9_2", HotelID: "hotel_9", Type: "Beachfront", Capacity: 3, PricePerNight: 95, Amenities: []string{"WiFi", "TV", "Beach View"}, Available: true},
		{ID: "room_10_1", HotelID: "hotel_10", Type: "Dorm Bed", Capacity: 1, PricePerNight: 75, Amenities: []string{"WiFi", "Shared Bathroom"}, Available: true},
		{ID: "room_10_2", HotelID: "hotel_10", Type: "Private Room", Capacity: 2, PricePerNight: 90, Amenities: []string{"WiFi", "Private Bathroom"}, Available: true},
		{ID: "room_11_1", HotelID: "hotel_11", Type: "Standard", Capacity: 2, PricePerNight: 95, Amenities: []string{"WiFi", "TV", "Ocean View"}, Available: true},
		{ID: "room_11_2", HotelID: "hotel_11", Type: "Deluxe Ocean", Capacity: 3, PricePerNight: 110, Amenities: []string{"WiFi", "TV", "Ocean View", "Balcony"}, Available: true},
	}
}

func demoBookings() []domain.Booking {
	return []domain.Booking{
		{ID: "booking_001", HotelID: "hotel_1", RoomID: "room_1_1", GuestName: "John Smith", GuestEmail: "john.smith@email.com",
			Stay: mustStay("2024-12-20", "2024-12-23"), TotalPrice: 750, Status: domain.StatusConfirmed},
		{ID: "booking_002", HotelID: "hotel_2", RoomID: "room_2_1", GuestName: "Sarah Johnson", GuestEmail: "sarah.j@email.com",
			Stay: mustStay("2024-12-25", "2024-12-27"), TotalPrice: 360, Status: domain.StatusConfirmed},
		{ID: "booking_003", HotelID: "hotel_6", RoomID: "room_6_1", GuestName: "Mike Davis", GuestEmail: "mike.davis@email.com",
			Stay: mustStay("2025-01-15", "2025-01-18"), TotalPrice: 570, Status: domain.StatusConfirmed},
		{ID: "booking_004", HotelID: "hotel_7", RoomID: "room_7_1", GuestName: "Emma Wilson", GuestEmail: "emma.wilson@email.com",
			Stay: mustStay("2025-02-10", "2025-02-12"), TotalPrice: 340, Status: domain.StatusPending},
		{ID: "booking_005", HotelID: "hotel_9", RoomID: "room_9_1", GuestName: "David Brown", GuestEmail: "david.brown@email.com",
			Stay: mustStay("2024-12-30", "2025-01-02"), TotalPrice: 255, Status: domain.StatusConfirmed},
	}
}

func mustStay(in, out string) domain.Stay {
	s, err := domain.ParseStay(in, out)
	if err != nil {
		panic(err)
	}
	return s
}
