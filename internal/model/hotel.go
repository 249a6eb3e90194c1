package model

import "time"

// Hotel is a catalog entry from the `hotels` table.  Hotels are seeded
// out-of-band and are read-only for the API.  Amenities and RoomTypes are
// stored as JSON arrays.
type Hotel struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Location    string    `json:"location"`
    Description string    `json:"description"`
    Price       float64   `json:"price"`  // nightly price
    Rating      float64   `json:"rating"` // 0–5
    Amenities   []string  `json:"amenities"`
    RoomTypes   []string  `json:"roomTypes"`
    ImageURL    string    `json:"imageUrl"`
    CreatedAt   time.Time `json:"createdAt"`
}

// HasRoomType reports whether roomType is one of the hotel's room types.
func (h Hotel) HasRoomType(roomType string) bool {
    for _, rt := range h.RoomTypes {
        if rt == roomType {
            return true
        }
    }
    return false
}
