// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in BookingEvent.Type.
const (
    EventBookingConfirmed = "booking.confirmed"
    EventBookingCheckedIn = "booking.checked_in"
)

// BookingEvent is published when a booking is created and again when it is
// checked in.  It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary database.
// Identity document numbers are never included; only the member count.
type BookingEvent struct {
    EventID      string  `json:"event_id"`
    Type         string  `json:"type"`
    BookingID    uint64  `json:"booking_id"`
    UserID       uint64  `json:"user_id"`
    HotelID      uint64  `json:"hotel_id"`
    HotelName    string  `json:"hotel_name"`
    RoomType     string  `json:"room_type"`
    CheckInDate  string  `json:"check_in_date"`
    CheckOutDate string  `json:"check_out_date"`
    Guests       uint32  `json:"guests"`
    TotalAmount  float64 `json:"total_amount"`
    MemberCount  int     `json:"member_count,omitempty"`
    OccurredAt   string  `json:"occurred_at"`
}
