package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-booking/internal/handler"    // import the handlers that implement the endpoints
	"github.com/iliyamo/hotel-booking/internal/middleware" // import middleware for JWT authentication
)

// Deps collects everything the API routes need.  RateLimit and Cache are
// optional; nil disables them.
type Deps struct {
	Auth     *handler.AuthHandler
	Hotels   *handler.HotelHandler
	Bookings *handler.BookingHandler
	Verifier middleware.TokenVerifier

	RateLimit echo.MiddlewareFunc // applied to /api/auth/*
	Cache     echo.MiddlewareFunc // applied to catalog reads
}

// Register wires every route of the API onto e.
func Register(e *echo.Echo, d Deps) {
	jwt := middleware.JWTAuth(d.Verifier)
	RegisterRoutes(e)
	RegisterAuth(e, d.Auth, jwt, d.RateLimit)
	RegisterHotels(e, d.Hotels, jwt, d.Cache)
	RegisterBookings(e, d.Bookings, jwt)
}

// RegisterRoutes registers routes that do not require authentication and
// are not part of the API: the banner and the health check used by load
// balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Banner)
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes under /api/auth.
// Register and login are public; verify needs a valid session token.  The
// optional limiter throttles the whole group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwt, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/verify", a.Verify, jwt)
}

// RegisterHotels registers the catalog routes under /api/hotel.  Listing
// requires a session, looking up a single hotel does not.  The cache runs
// after JWTAuth so a cached list is never served to an anonymous caller.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, jwt, cache echo.MiddlewareFunc) {
	g := e.Group("/api/hotel")
	listChain := []echo.MiddlewareFunc{jwt}
	var byIDChain []echo.MiddlewareFunc
	if cache != nil {
		listChain = append(listChain, cache)
		byIDChain = append(byIDChain, cache)
	}
	g.GET("/getAllHotels", h.ListHotels, listChain...)
	g.GET("/hotelById/:id", h.GetHotel, byIDChain...)
}

// RegisterBookings registers the reservation routes under /api/bookings.
// All of them require a session.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwt echo.MiddlewareFunc) {
	g := e.Group("/api/bookings", jwt)
	g.POST("/create", b.CreateBooking)
	g.GET("/user", b.ListUserBookings)
	g.GET("/getBookingById/:id", b.GetBooking)
	g.POST("/:id/checkin", b.CheckIn)
}
