package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

// Demo credentials created by Seed.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
	DemoName     = "Demo User"
)

// DemoHotels is the starter catalog inserted by Seed.
func DemoHotels() []model.Hotel {
	return []model.Hotel{
		{
			Name:        "Royal Garden Resort",
			Location:    "Shimla, Himachal Pradesh",
			Description: "A luxury resort nestled in the beautiful hills of Shimla, offering panoramic views of the Himalayas.",
			Price:       7500,
			Rating:      4.7,
			Amenities:   []string{"Swimming Pool", "Spa", "Restaurant", "Room Service", "Wi-Fi"},
			RoomTypes:   []string{"Deluxe", "Super Deluxe", "Suite"},
			ImageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?ixlib=rb-1.2.1&auto=format&fit=crop&w=1080&q=80",
		},
		{
			Name:        "Beachside Paradise",
			Location:    "Goa, India",
			Description: "Experience the serene beaches of Goa with direct beach access and stunning sunset views.",
			Price:       8500,
			Rating:      4.5,
			Amenities:   []string{"Beach Access", "Bar", "Restaurant", "Pool", "Wi-Fi"},
			RoomTypes:   []string{"Standard", "Deluxe", "Beach View"},
			ImageURL:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?ixlib=rb-1.2.1&auto=format&fit=crop&w=1080&q=80",
		},
		{
			Name:        "Heritage Palace Hotel",
			Location:    "Jaipur, Rajasthan",
			Description: "A royal experience in the heart of the Pink City with architecture inspired by Rajasthani heritage.",
			Price:       12000,
			Rating:      4.8,
			Amenities:   []string{"Heritage Tours", "Spa", "Fine Dining", "Pool", "Wi-Fi"},
			RoomTypes:   []string{"Heritage Room", "Palace Suite", "Royal Suite"},
			ImageURL:    "https://images.unsplash.com/photo-1566737236500-c8ac43014a67?ixlib=rb-1.2.1&auto=format&fit=crop&w=1080&q=80",
		},
	}
}

// SeedResult reports what Seed changed.
type SeedResult struct {
	UserCreated   bool
	HotelsCreated int
}

// Seed makes sure the demo user exists and, when the catalog is empty,
// inserts DemoHotels.  Running it twice changes nothing.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) (SeedResult, error) {
	var res SeedResult
	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)

	if _, err := users.GetByEmail(ctx, DemoEmail); errors.Is(err, repository.ErrNotFound) {
		hash, err := utils.NewPasswords(bcryptCost).Hash(DemoPassword)
		if err != nil {
			return res, fmt.Errorf("seed: hash demo password: %w", err)
		}
		u := model.User{Name: DemoName, Email: DemoEmail, PasswordHash: hash}
		if err := users.Create(ctx, &u); err != nil && !errors.Is(err, repository.ErrEmailExists) {
			return res, fmt.Errorf("seed: create demo user: %w", err)
		}
		res.UserCreated = true
	} else if err != nil {
		return res, fmt.Errorf("seed: lookup demo user: %w", err)
	}

	n, err := hotels.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("seed: count hotels: %w", err)
	}
	if n > 0 {
		log.Printf("seed: %d hotels present, catalog left untouched", n)
		return res, nil
	}
	for _, h := range DemoHotels() {
		h := h
		if err := hotels.Create(ctx, &h); err != nil {
			return res, fmt.Errorf("seed: create hotel %q: %w", h.Name, err)
		}
		res.HotelsCreated++
	}
	return res, nil
}
