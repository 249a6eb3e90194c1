package model

import "time"

// BookingStatusConfirmed is the only status a booking is ever given.  There
// is no cancellation path.
const BookingStatusConfirmed = "CONFIRMED"

// Booking records a user's reservation at a hotel.  IsCheckedIn flips from
// false to true exactly once, together with the creation of the booking's
// CheckIn.
//
// Hotel and CheckIn are populated by the repository joins; CheckIn stays nil
// until the booking has been checked in.
type Booking struct {
    ID             uint64    `json:"id"`             // bookings.id
    UserID         uint64    `json:"userId"`         // bookings.user_id
    HotelID        uint64    `json:"hotelId"`        // bookings.hotel_id
    CheckInDate    time.Time `json:"checkInDate"`    // bookings.check_in_date
    CheckOutDate   time.Time `json:"checkOutDate"`   // bookings.check_out_date
    RoomType       string    `json:"roomType"`       // bookings.room_type
    NumberOfGuests uint32    `json:"numberOfGuests"` // bookings.number_of_guests
    TotalAmount    float64   `json:"totalAmount"`    // bookings.total_amount (client computed)
    Status         string    `json:"status"`         // bookings.status
    IsCheckedIn    bool      `json:"isCheckedIn"`    // bookings.is_checked_in
    CreatedAt      time.Time `json:"createdAt"`      // bookings.created_at
    UpdatedAt      time.Time `json:"updatedAt"`      // bookings.updated_at

    Hotel   *Hotel   `json:"hotel,omitempty"`
    CheckIn *CheckIn `json:"checkIn"`
}

// FamilyMember is one guest identity document recorded at check-in.
type FamilyMember struct {
    Name          string `json:"name"`
    AadhaarNumber string `json:"aadhaarNumber"`
}

// CheckIn is the one-time web check-in record of a booking (`checkins`
// table, unique on booking_id).
type CheckIn struct {
    ID            uint64         `json:"id"`
    BookingID     uint64         `json:"bookingId"`
    FamilyMembers []FamilyMember `json:"familyMembers"`
    CreatedAt     time.Time      `json:"createdAt"`
}
