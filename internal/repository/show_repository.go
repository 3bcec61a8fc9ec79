// Package repository contains data access for show scheduling.  A Show is a
// single screening slot; overlap detection against other shows in the same
// room is done in the service layer over the rows returned by
// ListByRoomAndDate.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories, such as creating a show and
// its seat inventory atomically.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new show within the caller's transaction and populates
// the generated ID and creation timestamp.  The caller commits or rolls
// back; show creation always shares a transaction with seat initialization
// so a failure part way leaves neither.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	const q = `INSERT INTO shows (movie_id, room_id, starts_at) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.MovieID, s.RoomID, s.StartsAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT id, movie_id, room_id, starts_at, created_at FROM shows WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, s.ID).
		Scan(&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.CreatedAt)
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound when no
// matching row exists.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, created_at FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMovie returns upcoming shows for a movie ordered by start time.
func (r *ShowRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Show, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, created_at
	           FROM shows WHERE movie_id = ? ORDER BY starts_at ASC`
	return r.list(ctx, q, movieID)
}

// ListByRoomAndDate returns every show scheduled in a room on the given
// calendar day, ordered by start time.  The conflict checker compares the
// candidate's interval against these rows.
func (r *ShowRepo) ListByRoomAndDate(ctx context.Context, roomID uint64, day time.Time) ([]model.Show, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, created_at
	           FROM shows WHERE room_id = ? AND DATE(starts_at) = DATE(?)
	           ORDER BY starts_at ASC`
	return r.list(ctx, q, roomID, day.UTC())
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	shows := make([]model.Show, 0)
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shows, nil
}

// Delete removes a show and its seat inventory in one transaction.  Shows
// with confirmed bookings cannot be deleted and return ErrConflict.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE show_id = ? AND status = ?`,
		id, model.BookingConfirmed).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE show_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrShowNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
