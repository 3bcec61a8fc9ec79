package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// MovieRepo manages persistence for the movie catalogue, including each
// movie's three-tier ticket price schedule.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, title, description, genre, rating, poster_url,
	child_price, adult_price, senior_price, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.Rating, &m.PosterURL,
		&m.ChildPrice, &m.AdultPrice, &m.SeniorPrice, &m.CreatedAt, &m.UpdatedAt)
}

// Create inserts a new movie and populates the generated ID and DB-default
// timestamps on the given struct.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, description, genre, rating, poster_url,
		child_price, adult_price, senior_price) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.Genre, m.Rating,
		m.PosterURL, m.ChildPrice, m.AdultPrice, m.SeniorPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	return scanMovie(r.db.QueryRowContext(ctx, sel, m.ID), m)
}

// GetByID retrieves a movie by its ID.  It returns ErrMovieNotFound when no
// matching row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	var m model.Movie
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the full catalogue ordered by title.  An empty slice and nil
// error are returned when no movies exist.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// Update rewrites every mutable column of a movie.  It returns
// ErrMovieNotFound when the movie does not exist.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies SET title = ?, description = ?, genre = ?, rating = ?,
		poster_url = ?, child_price = ?, adult_price = ?, senior_price = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.Genre, m.Rating,
		m.PosterURL, m.ChildPrice, m.AdultPrice, m.SeniorPrice, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Could also be a no-op update; confirm existence before reporting.
		var exists uint64
		if err2 := r.db.QueryRowContext(ctx, `SELECT id FROM movies WHERE id = ?`, m.ID).Scan(&exists); err2 != nil {
			if errors.Is(err2, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return err2
		}
	}
	const sel = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	return scanMovie(r.db.QueryRowContext(ctx, sel, m.ID), m)
}

// Delete removes a movie.  It returns ErrConflict when shows still reference
// the movie and ErrMovieNotFound when it does not exist.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shows WHERE movie_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
