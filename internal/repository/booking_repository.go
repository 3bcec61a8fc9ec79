package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// BookingRepo persists bookings and their seat lines.  Booking rows are only
// ever written inside the same transaction that reserved the seats, so a
// booking can never point at seats it does not hold.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// CreateTx inserts a booking and its seat lines within the caller's
// transaction.  The generated ID and DB-default fields are populated on the
// given struct.  Seat lines are written with one multi-row INSERT.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (reference, user_id, show_id, status, promo_code,
		subtotal, discount, tax, total) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.Reference, b.UserID, b.ShowID, b.Status,
		b.PromoCode, b.Subtotal, b.Discount, b.Tax, b.Total)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if len(b.Seats) > 0 {
		query := `INSERT INTO booking_seats (booking_id, seat_number, age, price) VALUES `
		args := make([]interface{}, 0, len(b.Seats)*4)
		parts := make([]string, 0, len(b.Seats))
		for _, s := range b.Seats {
			parts = append(parts, "(?, ?, ?, ?)")
			args = append(args, b.ID, s.SeatNumber, s.Age, s.Price)
		}
		if _, err := tx.ExecContext(ctx, query+strings.Join(parts, ","), args...); err != nil {
			return err
		}
	}
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

const bookingColumns = `id, reference, user_id, show_id, status, promo_code,
	subtotal, discount, tax, total, created_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	var promo sql.NullString
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.ShowID, &b.Status, &promo,
		&b.Subtotal, &b.Discount, &b.Tax, &b.Total, &b.CreatedAt); err != nil {
		return err
	}
	if promo.Valid {
		code := promo.String
		b.PromoCode = &code
	}
	return nil
}

// GetByID loads one booking with its seat lines.  It returns
// ErrBookingNotFound on a miss.  Ownership is the caller's concern.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := r.attachSeats(ctx, []*model.Booking{&b}); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns a user's booking history newest first, seat lines
// populated with a single IN query across all bookings.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	return r.listWithSeats(ctx, q, userID)
}

// ListByShow returns every booking for a show, newest first.  Used by the
// admin back office.
func (r *BookingRepo) ListByShow(ctx context.Context, showID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE show_id = ? ORDER BY created_at DESC`
	return r.listWithSeats(ctx, q, showID)
}

func (r *BookingRepo) listWithSeats(ctx context.Context, q string, arg any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	refs := make([]*model.Booking, len(bookings))
	for i := range bookings {
		refs[i] = &bookings[i]
	}
	if err := r.attachSeats(ctx, refs); err != nil {
		return nil, err
	}
	return bookings, nil
}

// attachSeats populates the Seats slice of each booking with one IN query.
func (r *BookingRepo) attachSeats(ctx context.Context, bookings []*model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	index := make(map[uint64]*model.Booking, len(bookings))
	args := make([]interface{}, 0, len(bookings))
	parts := make([]string, 0, len(bookings))
	for _, b := range bookings {
		b.Seats = make([]model.BookingSeat, 0)
		index[b.ID] = b
		args = append(args, b.ID)
		parts = append(parts, "?")
	}
	query := `SELECT booking_id, seat_number, age, price FROM booking_seats
	          WHERE booking_id IN (` + strings.Join(parts, ",") + `)
	          ORDER BY booking_id, seat_number`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var bid uint64
		var s model.BookingSeat
		if err := rows.Scan(&bid, &s.SeatNumber, &s.Age, &s.Price); err != nil {
			return err
		}
		if b, ok := index[bid]; ok {
			b.Seats = append(b.Seats, s)
		}
	}
	return rows.Err()
}

// GetForUpdateTx loads a booking's show, owner, status and seat numbers
// within a transaction, for cancellation.  It returns ErrBookingNotFound on
// a miss; the caller checks ownership against the returned user ID.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (userID, showID uint64, status string, numbers []uint32, err error) {
	const q = `SELECT user_id, show_id, status FROM bookings WHERE id = ? FOR UPDATE`
	if err = tx.QueryRowContext(ctx, q, id).Scan(&userID, &showID, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrBookingNotFound
		}
		return
	}
	rows, qerr := tx.QueryContext(ctx,
		`SELECT seat_number FROM booking_seats WHERE booking_id = ?`, id)
	if qerr != nil {
		err = qerr
		return
	}
	defer rows.Close()
	for rows.Next() {
		var n uint32
		if err = rows.Scan(&n); err != nil {
			return
		}
		numbers = append(numbers, n)
	}
	err = rows.Err()
	return
}

// SetStatusTx updates a booking's status within the caller's transaction.
func (r *BookingRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}
