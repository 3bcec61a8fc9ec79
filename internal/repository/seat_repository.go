package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// SeatRepo manages the per-show seat inventory.  Seats are created in bulk
// when a show is scheduled and individually reserved at checkout through a
// conditional update, so a seat can never be reserved twice even under
// concurrent requests.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// InitInventoryTx creates seats numbered 1..total for a show inside the
// caller's transaction, as a single multi-row INSERT so the inventory is
// all-or-nothing.  If the show already has any seat rows, ErrConflict is
// returned and nothing is written; re-initialization is an explicit reject,
// not a silent no-op.
func (r *SeatRepo) InitInventoryTx(ctx context.Context, tx *sql.Tx, showID uint64, total uint32) error {
	if total == 0 {
		return nil
	}
	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seats WHERE show_id = ?`, showID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return ErrConflict
	}
	query, args := seatInsertStatement(showID, total)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// seatInsertStatement builds the multi-row INSERT covering seat numbers
// 1..total exactly once each.
func seatInsertStatement(showID uint64, total uint32) (string, []interface{}) {
	args := make([]interface{}, 0, int(total)*2)
	parts := make([]string, 0, total)
	for n := uint32(1); n <= total; n++ {
		parts = append(parts, "(?, ?)")
		args = append(args, showID, n)
	}
	return `INSERT INTO seats (show_id, seat_number) VALUES ` + strings.Join(parts, ","), args
}

// ListByShow returns the full seat inventory for a show ordered by ascending
// seat number.  The ordering is part of the contract: the storage engine
// returns rows in no particular order and everything downstream assumes
// numeric order.
func (r *SeatRepo) ListByShow(ctx context.Context, showID uint64) ([]model.Seat, error) {
	const q = `SELECT id, show_id, seat_number, is_reserved, user_id, age, reserved_at
	           FROM seats WHERE show_id = ? ORDER BY seat_number ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		var userID sql.NullInt64
		var age sql.NullInt64
		var reservedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.ShowID, &s.SeatNumber, &s.IsReserved,
			&userID, &age, &reservedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			uid := uint64(userID.Int64)
			s.UserID = &uid
		}
		if age.Valid {
			a := uint32(age.Int64)
			s.Age = &a
		}
		if reservedAt.Valid {
			t := reservedAt.Time
			s.ReservedAt = &t
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// FilterReservedTx returns the subset of the requested seat numbers that are
// already reserved, within the caller's transaction.  An empty result means
// every requested seat was free at the time of the check.  This is advisory
// only; ReserveTx enforces the invariant at write time.
func (r *SeatRepo) FilterReservedTx(ctx context.Context, tx *sql.Tx, showID uint64, numbers []uint32) ([]uint32, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	query := `SELECT seat_number FROM seats WHERE show_id = ? AND is_reserved = 1 AND seat_number IN (`
	args := make([]interface{}, 0, len(numbers)+1)
	args = append(args, showID)
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, "?")
		args = append(args, n)
	}
	rows, err := tx.QueryContext(ctx, query+strings.Join(parts, ",")+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var taken []uint32
	for rows.Next() {
		var n uint32
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		taken = append(taken, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// ReserveTx marks one seat as reserved for a user inside the caller's
// transaction.  The update is conditional on the seat still being free;
// when zero rows are affected the seat was taken between the pre-check and
// now, and ErrSeatTaken is returned so the caller can roll back the whole
// request.
func (r *SeatRepo) ReserveTx(ctx context.Context, tx *sql.Tx, showID uint64, seatNumber uint32, userID uint64, age uint32, at time.Time) error {
	const q = `UPDATE seats
	           SET is_reserved = 1, user_id = ?, age = ?, reserved_at = ?
	           WHERE show_id = ? AND seat_number = ? AND is_reserved = 0`
	res, err := tx.ExecContext(ctx, q, userID, age, at.UTC(), showID, seatNumber)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrSeatTaken
	}
	return nil
}

// ReleaseTx frees the given seats inside the caller's transaction, clearing
// the reservation fields.  Used by booking cancellation.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, showID uint64, numbers []uint32) error {
	if len(numbers) == 0 {
		return nil
	}
	query := `UPDATE seats SET is_reserved = 0, user_id = NULL, age = NULL, reserved_at = NULL
	          WHERE show_id = ? AND seat_number IN (`
	args := make([]interface{}, 0, len(numbers)+1)
	args = append(args, showID)
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, "?")
		args = append(args, n)
	}
	_, err := tx.ExecContext(ctx, query+strings.Join(parts, ",")+`)`, args...)
	return err
}
