package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

type memUsers struct {
	mu     sync.Mutex
	byID   map[uint64]model.User
	nextID uint64
	// raceEmail makes Create fail with ErrEmailExists, simulating a
	// concurrent registration that slipped past the lookup.
	raceEmail bool
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uint64]model.User{}} }

func (m *memUsers) Create(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceEmail {
		return repository.ErrEmailExists
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type memHotels struct {
	hotels []model.Hotel
}

func (m *memHotels) ListAll(ctx context.Context) ([]model.Hotel, error) {
	return append([]model.Hotel{}, m.hotels...), nil
}

func (m *memHotels) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	for _, h := range m.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Hotel{}, repository.ErrNotFound
}

type memBookings struct {
	mu           sync.Mutex
	hotels       *memHotels
	rows         map[uint64]model.Booking
	nextID       uint64
	checkInCalls int
	getCalls     int
}

func newMemBookings(hotels *memHotels) *memBookings {
	return &memBookings{hotels: hotels, rows: map[uint64]model.Booking{}}
}

func (m *memBookings) Create(ctx context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now().UTC().Add(time.Duration(m.nextID) * time.Second)
	b.UpdatedAt = b.CreatedAt
	stored := *b
	stored.Hotel, stored.CheckIn = nil, nil
	m.rows[b.ID] = stored
	return nil
}

func (m *memBookings) joined(b model.Booking) model.Booking {
	if h, err := m.hotels.GetByID(context.Background(), b.HotelID); err == nil {
		b.Hotel = &h
	}
	return b
}

func (m *memBookings) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	b, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := m.joined(b)
	return &out, nil
}

func (m *memBookings) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Booking{}
	for _, b := range m.rows {
		if b.UserID == userID {
			out = append(out, m.joined(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memBookings) CheckIn(ctx context.Context, bookingID uint64, members []model.FamilyMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkInCalls++
	b, ok := m.rows[bookingID]
	if !ok {
		return repository.ErrNotFound
	}
	if b.IsCheckedIn {
		return repository.ErrAlreadyCheckedIn
	}
	b.IsCheckedIn = true
	b.CheckIn = &model.CheckIn{ID: bookingID, BookingID: bookingID, FamilyMembers: members, CreatedAt: time.Now().UTC()}
	m.rows[bookingID] = b
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func seededHotels() *memHotels {
	return &memHotels{hotels: []model.Hotel{
		{ID: 1, Name: "Grand Plaza Hotel", Location: "New York", Price: 8500, Rating: 4.5,
			Amenities: []string{"Free WiFi"}, RoomTypes: []string{"Standard", "Deluxe", "Suite"}},
		{ID: 2, Name: "Beachside Paradise", Location: "Goa", Price: 6500, Rating: 4.7,
			Amenities: []string{"Beach Access"}, RoomTypes: []string{"Sea View", "Deluxe"}},
	}}
}
