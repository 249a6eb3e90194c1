package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/testfixtures"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewHarness(t)

	u := model.User{Name: "Alice", Email: " alice@example.com ", PasswordHash: "hash"}
	if err := h.Users.Create(ctx, &u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID == 0 || u.Email != "alice@example.com" {
		t.Fatalf("unexpected created user: %#v", u)
	}

	got, err := h.Users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "hash" || got.Name != "Alice" {
		t.Fatalf("unexpected user: %#v", got)
	}
	if _, err := h.Users.GetByID(ctx, u.ID); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	dup := model.User{Name: "Other", Email: "alice@example.com", PasswordHash: "x"}
	if err := h.Users.Create(ctx, &dup); !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("duplicate Create err = %v, want ErrEmailExists", err)
	}
	if _, err := h.Users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByEmail missing err = %v", err)
	}
	if _, err := h.Users.GetByID(ctx, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID missing err = %v", err)
	}
}

func TestHotelRepo(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewHarness(t)

	empty, err := h.Hotels.ListAll(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty ListAll = %v, %v", empty, err)
	}

	seeded := h.SeedHotels(t)
	hotels, err := h.Hotels.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(hotels) != len(seeded) {
		t.Fatalf("expected %d hotels, got %d", len(seeded), len(hotels))
	}
	for i := 1; i < len(hotels); i++ {
		if hotels[i-1].ID >= hotels[i].ID {
			t.Fatalf("hotels not ordered by id: %d then %d", hotels[i-1].ID, hotels[i].ID)
		}
	}

	got, err := h.Hotels.GetByID(ctx, seeded[1].ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Beachside Paradise" || len(got.RoomTypes) != 3 || got.RoomTypes[2] != "Beach View" {
		t.Fatalf("unexpected hotel: %#v", got)
	}
	if len(got.Amenities) != 5 || got.Price != 8500 || got.Rating != 4.5 {
		t.Fatalf("unexpected hotel details: %#v", got)
	}
	if _, err := h.Hotels.GetByID(ctx, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID missing err = %v", err)
	}
	if n, err := h.Hotels.Count(ctx); err != nil || n != 3 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func newBooking(userID, hotelID uint64) *model.Booking {
	in := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &model.Booking{
		UserID:         userID,
		HotelID:        hotelID,
		CheckInDate:    in,
		CheckOutDate:   in.AddDate(0, 0, 2),
		RoomType:       "Deluxe",
		NumberOfGuests: 2,
		TotalAmount:    17000,
	}
}

func TestBookingRepoCreateAndRead(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewHarness(t)
	hotels := h.SeedHotels(t)
	alice := h.CreateUser(t, "Alice", "alice@example.com")
	bob := h.CreateUser(t, "Bob", "bob@example.com")

	first := newBooking(alice.ID, hotels[1].ID)
	if err := h.Bookings.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ID == 0 || first.Status != model.BookingStatusConfirmed || first.IsCheckedIn {
		t.Fatalf("unexpected created booking: %#v", first)
	}
	second := newBooking(alice.ID, hotels[0].ID)
	if err := h.Bookings.Create(ctx, second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := h.Bookings.Create(ctx, newBooking(bob.ID, hotels[0].ID)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := h.Bookings.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Hotel == nil || got.Hotel.Name != "Beachside Paradise" {
		t.Fatalf("booking hotel not joined: %#v", got.Hotel)
	}
	if got.CheckIn != nil {
		t.Fatalf("fresh booking must not carry a check-in: %#v", got.CheckIn)
	}
	if !got.CheckInDate.Equal(first.CheckInDate) || !got.CheckOutDate.Equal(first.CheckOutDate) {
		t.Fatalf("dates changed: %v..%v", got.CheckInDate, got.CheckOutDate)
	}
	if got.NumberOfGuests != 2 || got.TotalAmount != 17000 || got.RoomType != "Deluxe" {
		t.Fatalf("unexpected booking: %#v", got)
	}

	list, err := h.Bookings.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first [%d %d], got %d entries", second.ID, first.ID, len(list))
	}
	none, err := h.Bookings.ListByUser(ctx, 999)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("ListByUser without bookings = %v, %v", none, err)
	}
	if _, err := h.Bookings.GetByID(ctx, 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID missing err = %v", err)
	}
}

func TestBookingRepoCheckInOnce(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewHarness(t)
	hotels := h.SeedHotels(t)
	alice := h.CreateUser(t, "Alice", "alice@example.com")
	b := newBooking(alice.ID, hotels[1].ID)
	if err := h.Bookings.Create(ctx, b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	members := []model.FamilyMember{
		{Name: "Asha", AadhaarNumber: "123456789012"},
		{Name: "Ravi", AadhaarNumber: "210987654321"},
	}
	if err := h.Bookings.CheckIn(ctx, b.ID, members); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	err := h.Bookings.CheckIn(ctx, b.ID, []model.FamilyMember{{Name: "Late", AadhaarNumber: "999999999999"}})
	if !errors.Is(err, repository.ErrAlreadyCheckedIn) {
		t.Fatalf("second CheckIn err = %v, want ErrAlreadyCheckedIn", err)
	}
	if err := h.Bookings.CheckIn(ctx, 999, members); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("CheckIn missing err = %v", err)
	}

	got, err := h.Bookings.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsCheckedIn || got.CheckIn == nil {
		t.Fatalf("booking not checked in: %#v", got)
	}
	if len(got.CheckIn.FamilyMembers) != 2 || got.CheckIn.FamilyMembers[0].Name != "Asha" {
		t.Fatalf("first check-in replaced: %#v", got.CheckIn.FamilyMembers)
	}
	if n, err := h.Bookings.CountCheckIns(ctx, b.ID); err != nil || n != 1 {
		t.Fatalf("CountCheckIns = %d, %v", n, err)
	}
}

func TestBookingRepoConcurrentCheckIn(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewHarness(t)
	hotels := h.SeedHotels(t)
	alice := h.CreateUser(t, "Alice", "alice@example.com")
	b := newBooking(alice.ID, hotels[0].ID)
	if err := h.Bookings.Create(ctx, b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- h.Bookings.CheckIn(ctx, b.ID, []model.FamilyMember{{Name: "A", AadhaarNumber: "123456789012"}})
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, repository.ErrAlreadyCheckedIn):
		default:
			t.Fatalf("unexpected CheckIn error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful check-in, got %d", wins)
	}
	if n, err := h.Bookings.CountCheckIns(ctx, b.ID); err != nil || n != 1 {
		t.Fatalf("CountCheckIns = %d, %v", n, err)
	}
}
