package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, location, rating, amenities, price_per_night, room_count, description)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name            = VALUES(name),
  location        = VALUES(location),
  rating          = VALUES(rating),
  amenities       = VALUES(amenities),
  price_per_night = VALUES(price_per_night),
  room_count      = VALUES(room_count),
  description     = VALUES(description)
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, room_type, capacity, price_per_night, amenities, available)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  room_type       = VALUES(room_type),
  capacity        = VALUES(capacity),
  price_per_night = VALUES(price_per_night),
  amenities       = VALUES(amenities),
  available       = VALUES(available)
`

// seq preserves load order; search results follow inventory insertion order.
const listHotelsSQL = `
SELECT id, name, location, rating, amenities, price_per_night, room_count, description
FROM hotels ORDER BY seq
`

const findHotelSQL = `
SELECT id, name, location, rating, amenities, price_per_night, room_count, description
FROM hotels WHERE id = ?
`

const listRoomsSQL = `
SELECT id, hotel_id, room_type, capacity, price_per_night, amenities, available
FROM rooms WHERE hotel_id = ? ORDER BY seq
`

const findRoomSQL = `
SELECT id, hotel_id, room_type, capacity, price_per_night, amenities, available
FROM rooms WHERE id = ? AND hotel_id = ?
`

const setRoomAvailableSQL = `UPDATE rooms SET available = ? WHERE id = ?`

// FOR UPDATE serializes concurrent commits against the same room: the
// overlap check and the insert happen inside one transaction holding the
// room's active-booking rows.
const selectActiveForUpdateSQL = `
SELECT check_in, check_out FROM bookings
WHERE room_id = ? AND status IN ('pending','confirmed')
FOR UPDATE
`

const insertBookingSQL = `
INSERT INTO bookings
  (id, hotel_id, room_id, guest_name, guest_email, check_in, check_out, total_price, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `
SELECT id, hotel_id, room_id, guest_name, guest_email, check_in, check_out, total_price, status
FROM bookings WHERE id = ?
`

const getBookingForUpdateSQL = getBookingSQL + ` FOR UPDATE`

const listBookingsSQL = `
SELECT id, hotel_id, room_id, guest_name, guest_email, check_in, check_out, total_price, status
FROM bookings ORDER BY seq
`

const activeForRoomSQL = `
SELECT id, hotel_id, room_id, guest_name, guest_email, check_in, check_out, total_price, status
FROM bookings WHERE room_id = ? AND status IN ('pending','confirmed') ORDER BY seq
`

const cancelBookingSQL = `UPDATE bookings SET status = 'cancelled' WHERE id = ?`
