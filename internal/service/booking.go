package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/pricing"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/queue"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
	"github.com/nikita-jha/cinema-booking-service-sub000/pkg/logger"
)

// ErrPromotionInvalid is returned when a promotion code exists but today
// falls outside its validity window.
var ErrPromotionInvalid = errors.New("promotion not valid today")

// ErrInvalidSelection wraps every seat-selection validation failure so
// handlers can map the whole family to a 400 without string matching.
var ErrInvalidSelection = errors.New("invalid seat selection")

// SeatsTakenError reports which of the requested seats were already
// reserved.  It is returned both by the advisory pre-check and by the
// enforced conditional update, so callers always learn the specific seats.
type SeatsTakenError struct {
	Numbers []uint32
}

func (e *SeatsTakenError) Error() string {
	return fmt.Sprintf("seats already reserved: %v", e.Numbers)
}

// EventPublisher delivers domain events to the message broker.  Publishing
// is best-effort: a broker outage must never fail a committed booking.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

// The stores below are the slices of the repository layer the booking
// workflow actually touches.  The concrete repos satisfy them as-is.
type MovieStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

type ShowStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Show, error)
}

type PromotionStore interface {
	GetByCode(ctx context.Context, code string) (*model.Promotion, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

type SeatStore interface {
	FilterReservedTx(ctx context.Context, tx *sql.Tx, showID uint64, numbers []uint32) ([]uint32, error)
	ReserveTx(ctx context.Context, tx *sql.Tx, showID uint64, seatNumber uint32, userID uint64, age uint32, at time.Time) error
	ReleaseTx(ctx context.Context, tx *sql.Tx, showID uint64, numbers []uint32) error
}

type BookingStore interface {
	CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (userID, showID uint64, status string, numbers []uint32, err error)
	SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error
}

// TxRunner scopes a function to one transaction: commit when fn returns
// nil, roll everything back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type sqlRunner struct {
	db *sql.DB
}

func (r sqlRunner) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// BookingService runs the checkout workflow: validate the draft booking,
// reserve every requested seat, price the order and record the booking, all
// in one transaction.
type BookingService struct {
	runner    TxRunner
	movies    MovieStore
	rooms     RoomStore
	shows     ShowStore
	seats     SeatStore
	promos    PromotionStore
	bookings  BookingStore
	users     UserStore
	publisher EventPublisher
	log       *zap.Logger
}

// NewBookingService constructs a BookingService over a live database.
// publisher may be nil to disable event publication.
func NewBookingService(db *sql.DB, movies *repository.MovieRepo, rooms *repository.RoomRepo,
	shows *repository.ShowRepo, seats *repository.SeatRepo, promos *repository.PromotionRepo,
	bookings *repository.BookingRepo, users *repository.UserRepo, publisher EventPublisher) *BookingService {
	if db == nil || movies == nil || rooms == nil || shows == nil || seats == nil ||
		promos == nil || bookings == nil || users == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return newBookingService(sqlRunner{db: db}, movies, rooms, shows, seats, promos, bookings, users, publisher)
}

func newBookingService(runner TxRunner, movies MovieStore, rooms RoomStore, shows ShowStore,
	seats SeatStore, promos PromotionStore, bookings BookingStore, users UserStore,
	publisher EventPublisher) *BookingService {
	return &BookingService{
		runner:    runner,
		movies:    movies,
		rooms:     rooms,
		shows:     shows,
		seats:     seats,
		promos:    promos,
		bookings:  bookings,
		users:     users,
		publisher: publisher,
		log:       logger.WithComponent("booking"),
	}
}

// QuoteResult is the priced draft booking returned to the seat-selection
// page.  PromoValid is false when a code was supplied but unknown or outside
// its window; the totals then exclude any discount.
type QuoteResult struct {
	pricing.Quote
	PromoCode  string `json:"promo_code,omitempty"`
	PromoValid bool   `json:"promo_valid"`
}

// Quote prices a draft booking without reserving anything.  An invalid or
// unknown promotion code leaves the totals unchanged and is reported via
// PromoValid; only checkout treats a bad code as an error.
func (s *BookingService) Quote(ctx context.Context, showID uint64, entries []pricing.Entry, promoCode string) (*QuoteResult, error) {
	show, err := s.shows.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.GetByID(ctx, show.MovieID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, show.RoomID)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(entries, room.Capacity); err != nil {
		return nil, err
	}
	res := &QuoteResult{PromoCode: promoCode}
	var promo *model.Promotion
	if promoCode != "" {
		p, err := s.promos.GetByCode(ctx, promoCode)
		switch {
		case errors.Is(err, repository.ErrPromotionNotFound):
			// unknown code: quote proceeds undiscounted
		case err != nil:
			return nil, err
		case p.ValidOn(time.Now()):
			promo = p
			res.PromoValid = true
		}
	}
	res.Quote = pricing.Compute(*movie, entries, promo)
	return res, nil
}

// Checkout reserves the requested seats for the user and records the
// booking.  The whole operation is one transaction: every seat update is
// conditional on the seat still being free, and any failure rolls back all
// of them together with the booking row.  A valid promotion is applied to
// the subtotal before tax; an unknown or expired code rejects the checkout
// rather than silently charging full price.
func (s *BookingService) Checkout(ctx context.Context, userID, showID uint64, entries []pricing.Entry, promoCode string) (*model.Booking, error) {
	show, err := s.shows.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.GetByID(ctx, show.MovieID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, show.RoomID)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(entries, room.Capacity); err != nil {
		return nil, err
	}
	var promo *model.Promotion
	if promoCode != "" {
		promo, err = s.promos.GetByCode(ctx, promoCode)
		if err != nil {
			return nil, err
		}
		if !promo.ValidOn(time.Now()) {
			return nil, ErrPromotionInvalid
		}
	}

	var booking *model.Booking
	err = s.runner.InTx(ctx, func(tx *sql.Tx) error {
		// Advisory pre-check, so the common case reports every taken seat
		// at once instead of failing on the first conditional update.
		numbers := make([]uint32, 0, len(entries))
		for _, e := range entries {
			numbers = append(numbers, e.SeatNumber)
		}
		taken, err := s.seats.FilterReservedTx(ctx, tx, showID, numbers)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return &SeatsTakenError{Numbers: taken}
		}

		// Enforced reservation: each update succeeds only if the seat is
		// still free, closing the race the pre-check cannot.
		now := time.Now().UTC()
		for _, e := range entries {
			if err := s.seats.ReserveTx(ctx, tx, showID, e.SeatNumber, userID, e.Age, now); err != nil {
				if errors.Is(err, repository.ErrSeatTaken) {
					return &SeatsTakenError{Numbers: []uint32{e.SeatNumber}}
				}
				return err
			}
		}

		q := pricing.Compute(*movie, entries, promo)
		booking = &model.Booking{
			Reference: uuid.NewString(),
			UserID:    userID,
			ShowID:    showID,
			Status:    model.BookingConfirmed,
			Subtotal:  q.Subtotal,
			Discount:  q.Discount,
			Tax:       q.Tax,
			Total:     q.Total,
			Seats:     make([]model.BookingSeat, 0, len(q.Lines)),
		}
		if promo != nil {
			code := promo.Code
			booking.PromoCode = &code
		}
		for _, line := range q.Lines {
			booking.Seats = append(booking.Seats, model.BookingSeat{
				SeatNumber: line.SeatNumber,
				Age:        line.Age,
				Price:      line.Price,
			})
		}
		return s.bookings.CreateTx(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.publishConfirmed(ctx, booking, movie, room, show)
	return booking, nil
}

// publishConfirmed emits the booking.confirmed event.  Failures are logged
// and swallowed; the booking is already committed.
func (s *BookingService) publishConfirmed(ctx context.Context, b *model.Booking, movie *model.Movie, room *model.Room, show *model.Show) {
	if s.publisher == nil {
		return
	}
	var email string
	if u, err := s.users.GetByID(ctx, b.UserID); err == nil {
		email = u.Email
	}
	event := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		UserID:      b.UserID,
		Email:       email,
		MovieTitle:  movie.Title,
		RoomName:    room.Name,
		StartsAt:    show.StartsAt.UTC().Format(time.RFC3339),
		Subtotal:    b.Subtotal,
		Discount:    b.Discount,
		Tax:         b.Tax,
		Total:       b.Total,
		ConfirmedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, seat := range b.Seats {
		event.Seats = append(event.Seats, queue.BookedSeat{
			SeatNumber: seat.SeatNumber,
			Age:        seat.Age,
			Price:      seat.Price,
		})
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.log.Warn("booking.confirmed publish failed",
			zap.Uint64("booking_id", b.ID), zap.Error(err))
	}
}

// Cancel marks a confirmed booking as cancelled and frees its seats, in one
// transaction.  Only the booking's owner may cancel it; cancelling an
// already-cancelled booking returns ErrConflict.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID uint64) error {
	return s.runner.InTx(ctx, func(tx *sql.Tx) error {
		owner, showID, status, numbers, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if owner != userID {
			return repository.ErrForbidden
		}
		if status != model.BookingConfirmed {
			return repository.ErrConflict
		}
		if err := s.bookings.SetStatusTx(ctx, tx, bookingID, model.BookingCancelled); err != nil {
			return err
		}
		return s.seats.ReleaseTx(ctx, tx, showID, numbers)
	})
}

// validateEntries checks a draft booking's seat selection against the room
// capacity: at least one entry, every seat number within 1..capacity, no
// duplicates, and ages inside a plausible range.
func validateEntries(entries []pricing.Entry, capacity uint32) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: at least one seat is required", ErrInvalidSelection)
	}
	seen := make(map[uint32]struct{}, len(entries))
	dupes := make([]uint32, 0)
	for _, e := range entries {
		if e.SeatNumber < 1 || e.SeatNumber > capacity {
			return fmt.Errorf("%w: seat number %d out of range 1..%d", ErrInvalidSelection, e.SeatNumber, capacity)
		}
		if e.Age > 130 {
			return fmt.Errorf("%w: age %d for seat %d is not plausible", ErrInvalidSelection, e.Age, e.SeatNumber)
		}
		if _, ok := seen[e.SeatNumber]; ok {
			dupes = append(dupes, e.SeatNumber)
		}
		seen[e.SeatNumber] = struct{}{}
	}
	if len(dupes) > 0 {
		sort.Slice(dupes, func(i, j int) bool { return dupes[i] < dupes[j] })
		return fmt.Errorf("%w: duplicate seat numbers: %v", ErrInvalidSelection, dupes)
	}
	return nil
}
