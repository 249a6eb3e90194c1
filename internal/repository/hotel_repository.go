package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/hotel-booking/internal/model"
)

// HotelRepo provides read access to the hotel catalog plus the insert used
// by seeding.  The API itself never writes hotels.
type HotelRepo struct {
    db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelColumns = `id, name, location, description, price, rating, amenities, room_types, image_url, created_at`

// ListAll returns every hotel ordered by id.
func (r *HotelRepo) ListAll(ctx context.Context) ([]model.Hotel, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+hotelColumns+` FROM hotels ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    hotels := []model.Hotel{}
    for rows.Next() {
        h, err := scanHotel(rows)
        if err != nil {
            return nil, err
        }
        hotels = append(hotels, h)
    }
    return hotels, rows.Err()
}

// GetByID returns the hotel with the given id or ErrNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
    h, err := scanHotel(r.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Hotel{}, ErrNotFound
    }
    return h, err
}

// Count returns the number of hotels in the catalog.
func (r *HotelRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&n)
    return n, err
}

// Create inserts a hotel and fills in its ID and CreatedAt.  Only used by
// seeding and tests.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
    amenities, err := json.Marshal(nonNil(h.Amenities))
    if err != nil {
        return err
    }
    roomTypes, err := json.Marshal(nonNil(h.RoomTypes))
    if err != nil {
        return err
    }
    h.CreatedAt = time.Now().UTC().Truncate(time.Second)
    const q = `INSERT INTO hotels (name, location, description, price, rating, amenities, room_types, image_url, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, h.Name, h.Location, h.Description, h.Price, h.Rating,
        string(amenities), string(roomTypes), h.ImageURL, h.CreatedAt)
    if err != nil {
        return fmt.Errorf("insert hotel: %w", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    h.ID = uint64(id)
    return nil
}

func scanHotel(s rowScanner) (model.Hotel, error) {
    var h model.Hotel
    var amenities, roomTypes string
    if err := s.Scan(&h.ID, &h.Name, &h.Location, &h.Description, &h.Price, &h.Rating,
        &amenities, &roomTypes, &h.ImageURL, &h.CreatedAt); err != nil {
        return model.Hotel{}, err
    }
    if err := decodeStrings(amenities, &h.Amenities); err != nil {
        return model.Hotel{}, fmt.Errorf("hotel %d amenities: %w", h.ID, err)
    }
    if err := decodeStrings(roomTypes, &h.RoomTypes); err != nil {
        return model.Hotel{}, fmt.Errorf("hotel %d room types: %w", h.ID, err)
    }
    return h, nil
}

// decodeStrings unmarshals a JSON array column; empty input yields an empty slice.
func decodeStrings(raw string, out *[]string) error {
    *out = []string{}
    if raw == "" {
        return nil
    }
    return json.Unmarshal([]byte(raw), out)
}

func nonNil(s []string) []string {
    if s == nil {
        return []string{}
    }
    return s
}
