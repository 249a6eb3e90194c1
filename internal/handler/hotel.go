package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/service"
)

// HotelHandler serves the read-only hotel catalog.
type HotelHandler struct {
    Catalog *service.CatalogService
}

func NewHotelHandler(catalog *service.CatalogService) *HotelHandler {
    return &HotelHandler{Catalog: catalog}
}

// ListHotels handles GET /api/hotel/getAllHotels.
func (h *HotelHandler) ListHotels(c echo.Context) error {
    ctx, cancel := requestContext(c)
    defer cancel()

    hotels, err := h.Catalog.ListHotels(ctx)
    if err != nil {
        return respondError(c, err, "Server error while fetching hotels")
    }
    return c.JSON(http.StatusOK, hotels)
}

// GetHotel handles GET /api/hotel/hotelById/:id.
func (h *HotelHandler) GetHotel(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "Invalid hotel id")
    }

    ctx, cancel := requestContext(c)
    defer cancel()

    hotel, err := h.Catalog.GetHotel(ctx, id)
    if err != nil {
        return respondError(c, err, "Server error while fetching hotel")
    }
    return c.JSON(http.StatusOK, hotel)
}
