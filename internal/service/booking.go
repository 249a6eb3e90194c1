package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// BookingStore is the persistence used by BookingService.  Reads return
// the booking joined with its hotel and check-in.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	CheckIn(ctx context.Context, bookingID uint64, members []model.FamilyMember) error
}

// EventPublisher emits booking lifecycle events.  Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// BookingService creates bookings, enforces ownership on reads and performs
// the one-time web check-in.
type BookingService struct {
	bookings BookingStore
	hotels   HotelStore
	events   EventPublisher
}

// NewBookingService wires the reservation engine.  A nil publisher disables
// booking events.
func NewBookingService(bookings BookingStore, hotels HotelStore, events EventPublisher) *BookingService {
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &BookingService{bookings: bookings, hotels: hotels, events: events}
}

// CreateBookingInput is the body of a booking request.  Zero values mean
// "not provided".
type CreateBookingInput struct {
	HotelID        uint64
	CheckInDate    string
	CheckOutDate   string
	RoomType       string
	NumberOfGuests int64
	TotalAmount    float64
}

const dateOnly = "2006-01-02"

// parseStayDate accepts a calendar date or a full RFC 3339 timestamp.
func parseStayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Second), nil
}

// CreateBooking validates the request, checks the hotel and persists a
// CONFIRMED booking that is not checked in.  The returned booking carries
// its hotel.
func (s *BookingService) CreateBooking(ctx context.Context, userID uint64, in CreateBookingInput) (*model.Booking, error) {
	roomType := strings.TrimSpace(in.RoomType)
	if in.HotelID == 0 || strings.TrimSpace(in.CheckInDate) == "" || strings.TrimSpace(in.CheckOutDate) == "" ||
		roomType == "" || in.NumberOfGuests == 0 || in.TotalAmount == 0 {
		return nil, newError(ErrValidation, "Please provide all required booking details")
	}
	checkIn, err := parseStayDate(in.CheckInDate)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid check-in date")
	}
	checkOut, err := parseStayDate(in.CheckOutDate)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid check-out date")
	}
	if !checkOut.After(checkIn) {
		return nil, newError(ErrValidation, "Check-out date must be after check-in date")
	}
	if in.NumberOfGuests < 0 || in.NumberOfGuests > int64(^uint32(0)) {
		return nil, newError(ErrValidation, "Number of guests must be a positive number")
	}
	if in.TotalAmount < 0 || math.IsInf(in.TotalAmount, 0) || math.IsNaN(in.TotalAmount) {
		return nil, newError(ErrValidation, "Total amount must be a positive number")
	}

	hotel, err := s.hotels.GetByID(ctx, in.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Hotel not found")
		}
		return nil, fmt.Errorf("get hotel %d: %w", in.HotelID, err)
	}
	if !hotel.HasRoomType(roomType) {
		return nil, newError(ErrValidation, "Room type is not available at this hotel")
	}

	b := &model.Booking{
		UserID:         userID,
		HotelID:        hotel.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		RoomType:       roomType,
		NumberOfGuests: uint32(in.NumberOfGuests),
		TotalAmount:    in.TotalAmount,
		Status:         model.BookingStatusConfirmed,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	b.Hotel = &hotel

	s.publish(ctx, bookingEvent(queue.EventBookingConfirmed, b))
	return b, nil
}

// ListUserBookings returns the caller's bookings, newest first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uint64) ([]model.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings of user %d: %w", userID, err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

// GetBooking returns one booking owned by userID.  Existence is checked
// before ownership.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uint64) (*model.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, newError(ErrAuthorization, "Not authorized to access this booking")
	}
	return b, nil
}

// CheckIn records the family members staying under a booking and marks it
// checked in.  Member validation happens before any store access; a booking
// can be checked in only once.
func (s *BookingService) CheckIn(ctx context.Context, userID, bookingID uint64, members []model.FamilyMember) (*model.Booking, error) {
	clean, err := ValidateFamilyMembers(members)
	if err != nil {
		return nil, err
	}

	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, newError(ErrAuthorization, "Not authorized to check in for this booking")
	}
	if b.IsCheckedIn {
		return nil, newError(ErrConflict, "Booking is already checked in")
	}

	if err := s.bookings.CheckIn(ctx, bookingID, clean); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyCheckedIn):
			return nil, newError(ErrConflict, "Booking is already checked in")
		case errors.Is(err, repository.ErrNotFound):
			return nil, newError(ErrNotFound, "Booking not found")
		}
		return nil, fmt.Errorf("check in booking %d: %w", bookingID, err)
	}

	updated, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ev := bookingEvent(queue.EventBookingCheckedIn, updated)
	ev.MemberCount = len(clean)
	s.publish(ctx, ev)
	return updated, nil
}

// ValidateFamilyMembers checks the check-in list in order and stops at the
// first bad record.  It returns the members with names and numbers trimmed.
func ValidateFamilyMembers(members []model.FamilyMember) ([]model.FamilyMember, error) {
	if len(members) == 0 {
		return nil, newError(ErrValidation, "Please provide family members details")
	}
	out := make([]model.FamilyMember, 0, len(members))
	for _, m := range members {
		name := strings.TrimSpace(m.Name)
		aadhaar := strings.TrimSpace(m.AadhaarNumber)
		if name == "" || aadhaar == "" {
			return nil, newError(ErrValidation, "Each family member must have a name and Aadhaar number")
		}
		if !isAadhaar(aadhaar) {
			return nil, newError(ErrValidation, "Aadhaar number must be 12 digits")
		}
		out = append(out, model.FamilyMember{Name: name, AadhaarNumber: aadhaar})
	}
	return out, nil
}

func isAadhaar(s string) bool {
	if len(s) != 12 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (s *BookingService) load(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Booking not found")
		}
		return nil, fmt.Errorf("get booking %d: %w", bookingID, err)
	}
	return b, nil
}

func (s *BookingService) publish(ctx context.Context, ev queue.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("booking event %s for booking %d not published: %v", ev.Type, ev.BookingID, err)
	}
}

func bookingEvent(kind string, b *model.Booking) queue.BookingEvent {
	ev := queue.BookingEvent{
		Type:         kind,
		BookingID:    b.ID,
		UserID:       b.UserID,
		HotelID:      b.HotelID,
		RoomType:     b.RoomType,
		CheckInDate:  b.CheckInDate.Format(dateOnly),
		CheckOutDate: b.CheckOutDate.Format(dateOnly),
		Guests:       b.NumberOfGuests,
		TotalAmount:  b.TotalAmount,
	}
	if b.Hotel != nil {
		ev.HotelName = b.Hotel.Name
	}
	return ev
}
