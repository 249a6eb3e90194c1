// Package testfixtures provides shared helpers for integration-style tests
// that need a real SQL store.
package testfixtures

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// OpenSQLite opens a migrated SQLite database in a temporary directory.
// The handle is closed automatically when the test ends.
func OpenSQLite(tb testing.TB) *sql.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "hotel_booking.db")
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	// One writer at a time; transactions would otherwise hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(context.Background(), db, database.DialectSQLite); err != nil {
		tb.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}

// Harness bundles the repositories over one temporary database.
type Harness struct {
	DB       *sql.DB
	Users    *repository.UserRepo
	Hotels   *repository.HotelRepo
	Bookings *repository.BookingRepo
}

// NewHarness returns repositories backed by a fresh SQLite database.
func NewHarness(tb testing.TB) *Harness {
	tb.Helper()
	db := OpenSQLite(tb)
	return &Harness{
		DB:       db,
		Users:    repository.NewUserRepo(db),
		Hotels:   repository.NewHotelRepo(db),
		Bookings: repository.NewBookingRepo(db),
	}
}

// SeedHotels inserts the demo catalog and returns it with ids filled in.
func (h *Harness) SeedHotels(tb testing.TB) []model.Hotel {
	tb.Helper()
	hotels := database.DemoHotels()
	for i := range hotels {
		if err := h.Hotels.Create(context.Background(), &hotels[i]); err != nil {
			tb.Fatalf("failed to create hotel %q: %v", hotels[i].Name, err)
		}
	}
	return hotels
}

// CreateUser inserts a user with a placeholder password hash.
func (h *Harness) CreateUser(tb testing.TB, name, email string) model.User {
	tb.Helper()
	u := model.User{Name: name, Email: email, PasswordHash: "x"}
	if err := h.Users.Create(context.Background(), &u); err != nil {
		tb.Fatalf("failed to create user %q: %v", email, err)
	}
	return u
}
