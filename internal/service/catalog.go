package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// HotelStore is the read side of the hotel catalog.
type HotelStore interface {
	ListAll(ctx context.Context) ([]model.Hotel, error)
	GetByID(ctx context.Context, id uint64) (model.Hotel, error)
}

// CatalogService serves the hotel catalog.  There is no search, filtering
// or pagination.
type CatalogService struct {
	hotels HotelStore
}

func NewCatalogService(hotels HotelStore) *CatalogService {
	return &CatalogService{hotels: hotels}
}

// ListHotels returns every hotel.
func (s *CatalogService) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	hotels, err := s.hotels.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

// GetHotel returns one hotel or a not-found error.
func (s *CatalogService) GetHotel(ctx context.Context, id uint64) (model.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Hotel{}, newError(ErrNotFound, "Hotel not found")
		}
		return model.Hotel{}, fmt.Errorf("get hotel %d: %w", id, err)
	}
	return h, nil
}
