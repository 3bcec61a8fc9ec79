package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/pricing"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/queue"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

// memRunner runs the transactional closure directly; the fakes below keep
// their own state, so commit/rollback bookkeeping is not needed.
type memRunner struct{}

func (memRunner) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

type fakeMovies struct{ m model.Movie }

func (f fakeMovies) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	if id != f.m.ID {
		return nil, repository.ErrMovieNotFound
	}
	m := f.m
	return &m, nil
}

type fakeRooms struct{ r model.Room }

func (f fakeRooms) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	if id != f.r.ID {
		return nil, repository.ErrRoomNotFound
	}
	r := f.r
	return &r, nil
}

type fakeShows struct{ s model.Show }

func (f fakeShows) GetByID(_ context.Context, id uint64) (*model.Show, error) {
	if id != f.s.ID {
		return nil, repository.ErrShowNotFound
	}
	s := f.s
	return &s, nil
}

type fakePromos struct{ byCode map[string]model.Promotion }

func (f fakePromos) GetByCode(_ context.Context, code string) (*model.Promotion, error) {
	p, ok := f.byCode[code]
	if !ok {
		return nil, repository.ErrPromotionNotFound
	}
	return &p, nil
}

type fakeUsers struct{ u model.User }

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	if id != f.u.ID {
		return model.User{}, repository.ErrUserNotFound
	}
	return f.u, nil
}

// fakeSeats mirrors the conditional-update contract: reserving an already
// reserved seat fails with ErrSeatTaken no matter what the pre-check said.
type fakeSeats struct {
	reserved     map[uint32]uint64 // seat number -> reserving user
	skipPrecheck bool              // simulate a stale availability read
}

func (f *fakeSeats) FilterReservedTx(_ context.Context, _ *sql.Tx, _ uint64, numbers []uint32) ([]uint32, error) {
	if f.skipPrecheck {
		return nil, nil
	}
	var taken []uint32
	for _, n := range numbers {
		if _, ok := f.reserved[n]; ok {
			taken = append(taken, n)
		}
	}
	return taken, nil
}

func (f *fakeSeats) ReserveTx(_ context.Context, _ *sql.Tx, _ uint64, seatNumber uint32, userID uint64, _ uint32, _ time.Time) error {
	if _, ok := f.reserved[seatNumber]; ok {
		return repository.ErrSeatTaken
	}
	f.reserved[seatNumber] = userID
	return nil
}

func (f *fakeSeats) ReleaseTx(_ context.Context, _ *sql.Tx, _ uint64, numbers []uint32) error {
	for _, n := range numbers {
		delete(f.reserved, n)
	}
	return nil
}

type fakeBookings struct {
	created  []*model.Booking
	statuses map[uint64]string
}

func (f *fakeBookings) CreateTx(_ context.Context, _ *sql.Tx, b *model.Booking) error {
	b.ID = uint64(len(f.created) + 1)
	b.CreatedAt = time.Now().UTC()
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookings) GetForUpdateTx(_ context.Context, _ *sql.Tx, id uint64) (uint64, uint64, string, []uint32, error) {
	for _, b := range f.created {
		if b.ID != id {
			continue
		}
		status := b.Status
		if s, ok := f.statuses[id]; ok {
			status = s
		}
		numbers := make([]uint32, 0, len(b.Seats))
		for _, seat := range b.Seats {
			numbers = append(numbers, seat.SeatNumber)
		}
		return b.UserID, b.ShowID, status, numbers, nil
	}
	return 0, 0, "", nil, repository.ErrBookingNotFound
}

func (f *fakeBookings) SetStatusTx(_ context.Context, _ *sql.Tx, id uint64, status string) error {
	f.statuses[id] = status
	return nil
}

type fakePublisher struct{ events []queue.BookingConfirmedEvent }

func (f *fakePublisher) PublishBookingConfirmed(_ context.Context, event queue.BookingConfirmedEvent) error {
	f.events = append(f.events, event)
	return nil
}

type checkoutFixture struct {
	svc      *BookingService
	seats    *fakeSeats
	bookings *fakeBookings
	pub      *fakePublisher
}

func newCheckoutFixture() checkoutFixture {
	today := time.Now().UTC()
	seats := &fakeSeats{reserved: map[uint32]uint64{}}
	bookings := &fakeBookings{statuses: map[uint64]string{}}
	pub := &fakePublisher{}
	svc := newBookingService(memRunner{},
		fakeMovies{m: model.Movie{ID: 1, Title: "Heat", ChildPrice: 10, AdultPrice: 16, SeniorPrice: 12}},
		fakeRooms{r: model.Room{ID: 2, Name: "Room A", Capacity: 100}},
		fakeShows{s: model.Show{ID: 5, MovieID: 1, RoomID: 2, StartsAt: today.Add(48 * time.Hour)}},
		seats,
		fakePromos{byCode: map[string]model.Promotion{
			"SAVE10":  {ID: 1, Code: "SAVE10", Percent: 10, StartsOn: today.AddDate(0, 0, -1), EndsOn: today.AddDate(0, 0, 1)},
			"EXPIRED": {ID: 2, Code: "EXPIRED", Percent: 50, StartsOn: today.AddDate(0, -2, 0), EndsOn: today.AddDate(0, -1, 0)},
		}},
		bookings,
		fakeUsers{u: model.User{ID: 9, Email: "ann@example.com", Name: "Ann"}},
		pub)
	return checkoutFixture{svc: svc, seats: seats, bookings: bookings, pub: pub}
}

func TestCheckoutReservesAndBlocksSecondAttempt(t *testing.T) {
	fix := newCheckoutFixture()
	ctx := context.Background()

	b, err := fix.svc.Checkout(ctx, 9, 5, []pricing.Entry{
		{SeatNumber: 3, Age: 10},
		{SeatNumber: 7, Age: 70},
	}, "")
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.InDelta(t, 22.0, b.Subtotal, 1e-9) // child 10 + senior 12
	assert.InDelta(t, 1.54, b.Tax, 1e-9)
	assert.InDelta(t, 23.54, b.Total, 1e-9)

	// Both seats are now held by the buyer.
	assert.Equal(t, uint64(9), fix.seats.reserved[3])
	assert.Equal(t, uint64(9), fix.seats.reserved[7])

	// A second attempt that includes a taken seat fails with the taken
	// numbers, creates nothing and steals nothing.
	_, err = fix.svc.Checkout(ctx, 11, 5, []pricing.Entry{
		{SeatNumber: 3, Age: 30},
		{SeatNumber: 8, Age: 30},
	}, "")
	var taken *SeatsTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, []uint32{3}, taken.Numbers)
	assert.Len(t, fix.bookings.created, 1)
	assert.Equal(t, uint64(9), fix.seats.reserved[3])
	_, seat8Reserved := fix.seats.reserved[8]
	assert.False(t, seat8Reserved)
}

func TestCheckoutLosesRaceAtReserveTime(t *testing.T) {
	// The availability read says the seat is free, but the conditional
	// update finds it taken.  The enforced path must still refuse.
	fix := newCheckoutFixture()
	fix.seats.reserved[3] = 9
	fix.seats.skipPrecheck = true

	_, err := fix.svc.Checkout(context.Background(), 11, 5, []pricing.Entry{{SeatNumber: 3, Age: 30}}, "")
	var taken *SeatsTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, []uint32{3}, taken.Numbers)
	assert.Empty(t, fix.bookings.created)
	assert.Equal(t, uint64(9), fix.seats.reserved[3])
}

func TestCheckoutPromotionHandling(t *testing.T) {
	entries := []pricing.Entry{{SeatNumber: 3, Age: 10}, {SeatNumber: 7, Age: 70}}

	t.Run("valid code discounts before tax", func(t *testing.T) {
		fix := newCheckoutFixture()
		b, err := fix.svc.Checkout(context.Background(), 9, 5, entries, "SAVE10")
		require.NoError(t, err)
		assert.InDelta(t, 22.0, b.Subtotal, 1e-9)
		assert.InDelta(t, 2.2, b.Discount, 1e-9)
		assert.InDelta(t, 1.386, b.Tax, 1e-9) // 7% of 19.80
		assert.InDelta(t, 21.186, b.Total, 1e-9)
		require.NotNil(t, b.PromoCode)
		assert.Equal(t, "SAVE10", *b.PromoCode)
	})

	t.Run("unknown code rejects the checkout", func(t *testing.T) {
		fix := newCheckoutFixture()
		_, err := fix.svc.Checkout(context.Background(), 9, 5, entries, "NOPE")
		require.ErrorIs(t, err, repository.ErrPromotionNotFound)
		assert.Empty(t, fix.bookings.created)
		assert.Empty(t, fix.seats.reserved)
	})

	t.Run("expired code rejects the checkout", func(t *testing.T) {
		fix := newCheckoutFixture()
		_, err := fix.svc.Checkout(context.Background(), 9, 5, entries, "EXPIRED")
		require.ErrorIs(t, err, ErrPromotionInvalid)
		assert.Empty(t, fix.bookings.created)
		assert.Empty(t, fix.seats.reserved)
	})
}

func TestCheckoutPublishesConfirmation(t *testing.T) {
	fix := newCheckoutFixture()
	b, err := fix.svc.Checkout(context.Background(), 9, 5, []pricing.Entry{{SeatNumber: 3, Age: 10}}, "")
	require.NoError(t, err)

	require.Len(t, fix.pub.events, 1)
	event := fix.pub.events[0]
	assert.Equal(t, b.Reference, event.Reference)
	assert.Equal(t, "ann@example.com", event.Email)
	assert.Equal(t, "Heat", event.MovieTitle)
	require.Len(t, event.Seats, 1)
	assert.Equal(t, uint32(3), event.Seats[0].SeatNumber)
}

func TestCancel(t *testing.T) {
	newBooked := func(t *testing.T) (checkoutFixture, uint64) {
		t.Helper()
		fix := newCheckoutFixture()
		b, err := fix.svc.Checkout(context.Background(), 9, 5, []pricing.Entry{
			{SeatNumber: 3, Age: 10},
			{SeatNumber: 7, Age: 70},
		}, "")
		require.NoError(t, err)
		return fix, b.ID
	}

	t.Run("owner cancel frees the seats", func(t *testing.T) {
		fix, id := newBooked(t)
		require.NoError(t, fix.svc.Cancel(context.Background(), 9, id))
		assert.Equal(t, model.BookingCancelled, fix.bookings.statuses[id])
		assert.Empty(t, fix.seats.reserved)
	})

	t.Run("cancelled seats can be rebooked", func(t *testing.T) {
		fix, id := newBooked(t)
		require.NoError(t, fix.svc.Cancel(context.Background(), 9, id))
		b, err := fix.svc.Checkout(context.Background(), 11, 5, []pricing.Entry{{SeatNumber: 3, Age: 30}}, "")
		require.NoError(t, err)
		assert.Equal(t, uint64(11), b.UserID)
		assert.Equal(t, uint64(11), fix.seats.reserved[3])
	})

	t.Run("double cancel conflicts", func(t *testing.T) {
		fix, id := newBooked(t)
		require.NoError(t, fix.svc.Cancel(context.Background(), 9, id))
		require.ErrorIs(t, fix.svc.Cancel(context.Background(), 9, id), repository.ErrConflict)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		fix, id := newBooked(t)
		require.ErrorIs(t, fix.svc.Cancel(context.Background(), 11, id), repository.ErrForbidden)
		// Nothing released.
		assert.Equal(t, uint64(9), fix.seats.reserved[3])
	})

	t.Run("unknown booking", func(t *testing.T) {
		fix := newCheckoutFixture()
		require.ErrorIs(t, fix.svc.Cancel(context.Background(), 9, 42), repository.ErrBookingNotFound)
	})
}

func TestQuoteDoesNotReserve(t *testing.T) {
	fix := newCheckoutFixture()
	res, err := fix.svc.Quote(context.Background(), 5, []pricing.Entry{
		{SeatNumber: 3, Age: 10},
		{SeatNumber: 7, Age: 70},
	}, "SAVE10")
	require.NoError(t, err)

	assert.True(t, res.PromoValid)
	assert.InDelta(t, 21.186, res.Total, 1e-9)
	assert.Empty(t, fix.seats.reserved)
	assert.Empty(t, fix.bookings.created)

	// An unknown code downgrades to an undiscounted quote instead of
	// failing.
	res, err = fix.svc.Quote(context.Background(), 5, []pricing.Entry{{SeatNumber: 3, Age: 10}}, "NOPE")
	require.NoError(t, err)
	assert.False(t, res.PromoValid)
	assert.InDelta(t, 10.70, res.Total, 1e-9)
}
