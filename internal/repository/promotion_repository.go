package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// PromotionRepo manages persistence for discount codes.  Validity checking
// against the date window is a model concern (Promotion.ValidOn); the repo
// only stores and looks up codes.
type PromotionRepo struct {
	db *sql.DB
}

// NewPromotionRepo constructs a PromotionRepo with the given DB handle.
func NewPromotionRepo(db *sql.DB) *PromotionRepo {
	return &PromotionRepo{db: db}
}

// Create inserts a new promotion.  Codes are stored upper-cased so lookup is
// case-insensitive.  Duplicate codes surface as ErrConflict.
func (r *PromotionRepo) Create(ctx context.Context, p *model.Promotion) error {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	const q = `INSERT INTO promotions (code, percent, starts_on, ends_on) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Code, p.Percent,
		p.StartsOn.UTC().Format("2006-01-02"), p.EndsOn.UTC().Format("2006-01-02"))
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT id, code, percent, starts_on, ends_on, created_at FROM promotions WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).
		Scan(&p.ID, &p.Code, &p.Percent, &p.StartsOn, &p.EndsOn, &p.CreatedAt)
}

// GetByCode looks a promotion up by exact (case-insensitive) code match.
// It returns ErrPromotionNotFound on a miss.
func (r *PromotionRepo) GetByCode(ctx context.Context, code string) (*model.Promotion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	const q = `SELECT id, code, percent, starts_on, ends_on, created_at FROM promotions WHERE code = ?`
	var p model.Promotion
	err := r.db.QueryRowContext(ctx, q, code).
		Scan(&p.ID, &p.Code, &p.Percent, &p.StartsOn, &p.EndsOn, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all promotions ordered by start date descending, newest
// windows first.
func (r *PromotionRepo) List(ctx context.Context) ([]model.Promotion, error) {
	const q = `SELECT id, code, percent, starts_on, ends_on, created_at
	           FROM promotions ORDER BY starts_on DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	promos := make([]model.Promotion, 0)
	for rows.Next() {
		var p model.Promotion
		if err := rows.Scan(&p.ID, &p.Code, &p.Percent, &p.StartsOn, &p.EndsOn, &p.CreatedAt); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return promos, nil
}

// Delete removes a promotion by ID, returning ErrPromotionNotFound when it
// does not exist.  Bookings that already used the code keep their totals.
func (r *PromotionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPromotionNotFound
	}
	return nil
}
