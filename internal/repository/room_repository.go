package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// RoomRepo manages persistence for rooms (auditoriums).  A room's capacity
// fixes how many seats are created for each show scheduled in it.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// DefaultCapacity is used when a room is created without an explicit
// capacity.
const DefaultCapacity = 100

// Create inserts a new room.  A zero capacity falls back to
// DefaultCapacity.  Duplicate names surface as ErrConflict.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	if room.Capacity == 0 {
		room.Capacity = DefaultCapacity
	}
	const q = `INSERT INTO rooms (name, capacity) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Capacity)
	if err != nil {
		// MySQL duplicate-key error for the unique name constraint.
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	const sel = `SELECT id, name, capacity, created_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, room.ID).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.CreatedAt)
}

// GetByID retrieves a room by its ID, returning ErrRoomNotFound on a miss.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, capacity, created_at FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// List returns all rooms ordered by name.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, name, capacity, created_at FROM rooms ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Rename changes a room's display name.  Capacity is immutable: existing
// shows already carry seat inventories sized from it.  Duplicate names
// surface as ErrConflict.
func (r *RoomRepo) Rename(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists uint64
		if err2 := r.db.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ?`, id).Scan(&exists); err2 != nil {
			if errors.Is(err2, sql.ErrNoRows) {
				return ErrRoomNotFound
			}
			return err2
		}
	}
	return nil
}

// Delete removes a room that has no scheduled shows.  Rooms with shows
// return ErrConflict; unknown IDs return ErrRoomNotFound.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows WHERE room_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
