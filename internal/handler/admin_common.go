package handler

import (
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/service"
)

// AdminHandler bundles everything the back office needs: catalogue and
// schedule management, promotion management and the user account list.
type AdminHandler struct {
	Movies   *repository.MovieRepo
	Rooms    *repository.RoomRepo
	Shows    *repository.ShowRepo
	Seats    *repository.SeatRepo
	Promos   *repository.PromotionRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Schedule *service.ScheduleService
}

func NewAdminHandler(movies *repository.MovieRepo, rooms *repository.RoomRepo, shows *repository.ShowRepo,
	seats *repository.SeatRepo, promos *repository.PromotionRepo, bookings *repository.BookingRepo,
	users *repository.UserRepo, schedule *service.ScheduleService) *AdminHandler {
	if movies == nil || rooms == nil || shows == nil || seats == nil ||
		promos == nil || bookings == nil || users == nil || schedule == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		Movies:   movies,
		Rooms:    rooms,
		Shows:    shows,
		Seats:    seats,
		Promos:   promos,
		Bookings: bookings,
		Users:    users,
		Schedule: schedule,
	}
}
