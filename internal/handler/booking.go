package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// BookingHandler exposes the reservation endpoints.  Every route is behind
// JWTAuth, so the caller id is always present.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	HotelID        number `json:"hotelId"`
	CheckInDate    string `json:"checkInDate"`
	CheckOutDate   string `json:"checkOutDate"`
	RoomType       string `json:"roomType"`
	NumberOfGuests number `json:"numberOfGuests"`
	TotalAmount    number `json:"totalAmount"`
}

type familyMemberReq struct {
	Name          string `json:"name"`
	AadhaarNumber digits `json:"aadhaarNumber"`
}

type checkInReq struct {
	FamilyMembers []familyMemberReq `json:"familyMembers"`
}

func (r checkInReq) members() []model.FamilyMember {
	if len(r.FamilyMembers) == 0 {
		return nil
	}
	out := make([]model.FamilyMember, len(r.FamilyMembers))
	for i, m := range r.FamilyMembers {
		out[i] = model.FamilyMember{Name: m.Name, AadhaarNumber: string(m.AadhaarNumber)}
	}
	return out
}

// CreateBooking handles POST /api/bookings/create.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	hotelID, whole := req.HotelID.wholeNumber()
	if !whole || hotelID < 0 {
		return badRequest(c, "Invalid hotel id")
	}
	guests, whole := req.NumberOfGuests.wholeNumber()
	if !whole {
		return badRequest(c, "Number of guests must be a positive number")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Bookings.CreateBooking(ctx, uid, service.CreateBookingInput{
		HotelID:        uint64(hotelID),
		CheckInDate:    req.CheckInDate,
		CheckOutDate:   req.CheckOutDate,
		RoomType:       req.RoomType,
		NumberOfGuests: guests,
		TotalAmount:    float64(req.TotalAmount),
	})
	if err != nil {
		return respondError(c, err, "Server error during booking creation")
	}
	return c.JSON(http.StatusCreated, b)
}

// ListUserBookings handles GET /api/bookings/user.
func (h *BookingHandler) ListUserBookings(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	bookings, err := h.Bookings.ListUserBookings(ctx, uid)
	if err != nil {
		return respondError(c, err, "Server error while fetching bookings")
	}
	return c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/getBookingById/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid booking id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Bookings.GetBooking(ctx, uid, id)
	if err != nil {
		return respondError(c, err, "Server error while fetching booking")
	}
	return c.JSON(http.StatusOK, b)
}

// CheckIn handles POST /api/bookings/:id/checkin.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid booking id")
	}
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Bookings.CheckIn(ctx, uid, id, req.members())
	if err != nil {
		return respondError(c, err, "Server error during check-in")
	}
	return c.JSON(http.StatusOK, b)
}
