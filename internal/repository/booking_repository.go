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

// BookingRepo persists bookings and their one-to-one check-in records.
// Reads always join the booking's hotel and, when present, its check-in so
// callers get the full Booking+Hotel+CheckIn view.  All timestamps are UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingSelect = `SELECT b.id, b.user_id, b.hotel_id, b.check_in_date, b.check_out_date,
                              b.room_type, b.number_of_guests, b.total_amount, b.status,
                              b.is_checked_in, b.created_at, b.updated_at,
                              h.id, h.name, h.location, h.description, h.price, h.rating,
                              h.amenities, h.room_types, h.image_url, h.created_at,
                              c.id, c.family_members, c.created_at
                       FROM bookings b
                       JOIN hotels h ON h.id = b.hotel_id
                       LEFT JOIN checkins c ON c.booking_id = b.id`

// Create inserts a booking.  Status defaults to CONFIRMED and IsCheckedIn is
// always false; ID, CreatedAt and UpdatedAt are filled in on success.  The
// caller is responsible for checking that the hotel exists.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    if b.Status == "" {
        b.Status = model.BookingStatusConfirmed
    }
    b.IsCheckedIn = false
    now := time.Now().UTC().Truncate(time.Second)
    b.CreatedAt, b.UpdatedAt = now, now
    const q = `INSERT INTO bookings (user_id, hotel_id, check_in_date, check_out_date, room_type,
                                     number_of_guests, total_amount, status, is_checked_in, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, b.UserID, b.HotelID, b.CheckInDate.UTC(), b.CheckOutDate.UTC(),
        b.RoomType, b.NumberOfGuests, b.TotalAmount, b.Status, false, b.CreatedAt, b.UpdatedAt)
    if err != nil {
        return fmt.Errorf("insert booking: %w", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return fmt.Errorf("insert booking id: %w", err)
    }
    b.ID = uint64(id)
    return nil
}

// GetByID returns the booking with its hotel and check-in, or ErrNotFound.
// Ownership is not checked here; the reservation service compares UserID.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return b, nil
}

// ListByUser returns every booking owned by userID, newest first.  An empty
// slice (never nil) is returned when the user has no bookings.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, bookingSelect+` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Booking{}
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    return out, rows.Err()
}

// CheckIn atomically records the family members for a booking and flips its
// is_checked_in flag.  It returns ErrNotFound when the booking does not
// exist and ErrAlreadyCheckedIn when the booking was checked in before or a
// concurrent check-in won the race (unique key on checkins.booking_id, or
// the guarded UPDATE affecting no row).  No row is written on failure.
func (r *BookingRepo) CheckIn(ctx context.Context, bookingID uint64, members []model.FamilyMember) error {
    payload, err := json.Marshal(members)
    if err != nil {
        return err
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin check-in: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var checkedIn bool
    err = tx.QueryRowContext(ctx, `SELECT is_checked_in FROM bookings WHERE id = ?`, bookingID).Scan(&checkedIn)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrNotFound
    }
    if err != nil {
        return err
    }
    if checkedIn {
        return ErrAlreadyCheckedIn
    }

    now := time.Now().UTC().Truncate(time.Second)
    if _, err := tx.ExecContext(ctx,
        `INSERT INTO checkins (booking_id, family_members, created_at) VALUES (?, ?, ?)`,
        bookingID, string(payload), now); err != nil {
        if isDuplicateKey(err) {
            return ErrAlreadyCheckedIn
        }
        return fmt.Errorf("insert check-in: %w", err)
    }

    res, err := tx.ExecContext(ctx,
        `UPDATE bookings SET is_checked_in = ?, updated_at = ? WHERE id = ? AND is_checked_in = ?`,
        true, now, bookingID, false)
    if err != nil {
        return fmt.Errorf("flag booking checked in: %w", err)
    }
    if n, err := res.RowsAffected(); err != nil {
        return err
    } else if n == 0 {
        return ErrAlreadyCheckedIn
    }

    if err := tx.Commit(); err != nil {
        if isDuplicateKey(err) {
            return ErrAlreadyCheckedIn
        }
        return fmt.Errorf("commit check-in: %w", err)
    }
    committed = true
    return nil
}

// CountCheckIns returns how many check-in rows reference the booking.  The
// invariant is that this is 1 when is_checked_in is true and 0 otherwise.
func (r *BookingRepo) CountCheckIns(ctx context.Context, bookingID uint64) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkins WHERE booking_id = ?`, bookingID).Scan(&n)
    return n, err
}

func scanBooking(s rowScanner) (*model.Booking, error) {
    var b model.Booking
    var h model.Hotel
    var amenities, roomTypes string
    var ciID sql.NullInt64
    var ciMembers sql.NullString
    var ciCreated sql.NullTime
    if err := s.Scan(
        &b.ID, &b.UserID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
        &b.RoomType, &b.NumberOfGuests, &b.TotalAmount, &b.Status,
        &b.IsCheckedIn, &b.CreatedAt, &b.UpdatedAt,
        &h.ID, &h.Name, &h.Location, &h.Description, &h.Price, &h.Rating,
        &amenities, &roomTypes, &h.ImageURL, &h.CreatedAt,
        &ciID, &ciMembers, &ciCreated,
    ); err != nil {
        return nil, err
    }
    if err := decodeStrings(amenities, &h.Amenities); err != nil {
        return nil, fmt.Errorf("hotel %d amenities: %w", h.ID, err)
    }
    if err := decodeStrings(roomTypes, &h.RoomTypes); err != nil {
        return nil, fmt.Errorf("hotel %d room types: %w", h.ID, err)
    }
    b.Hotel = &h
    if ciID.Valid {
        ci := &model.CheckIn{ID: uint64(ciID.Int64), BookingID: b.ID, FamilyMembers: []model.FamilyMember{}}
        if ciMembers.Valid && ciMembers.String != "" {
            if err := json.Unmarshal([]byte(ciMembers.String), &ci.FamilyMembers); err != nil {
                return nil, fmt.Errorf("booking %d family members: %w", b.ID, err)
            }
        }
        if ciCreated.Valid {
            ci.CreatedAt = ciCreated.Time
        }
        b.CheckIn = ci
    }
    return &b, nil
}
