// Package router wires the HTTP surface together: public browse endpoints,
// the auth group, the authenticated customer flow and the admin back
// office.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/handler"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/middleware"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

// RegisterHealth exposes the health check outside any versioned group.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /v1/auth group plus the authenticated profile
// endpoints.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
	me.PATCH("/me", a.UpdateProfile)
}

// RegisterPublic registers the unauthenticated browse surface.  cache may
// be nil when Redis is unavailable; the routes then run uncached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if cache != nil {
		mw = append(mw, cache)
	}
	e.GET("/v1/movies", p.ListMovies, mw...)
	e.GET("/v1/movies/:id", p.GetMovie, mw...)
	e.GET("/v1/movies/:id/shows", p.ListShowsByMovie, mw...)
	e.GET("/v1/shows/:id", p.GetShow, mw...)
	// Seat maps change on every booking, so they are served uncached.
	e.GET("/v1/shows/:id/seats", p.GetShowSeats)
	e.POST("/v1/promotions/validate", p.ValidatePromotion)
}

// RegisterBooking registers the authenticated customer flow.  Quote and
// history are open to any authenticated user; the endpoints that change
// seat state additionally require an active account.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, users *repository.UserRepo, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))

	g.POST("/shows/:id/quote", b.Quote)
	g.GET("/bookings", b.ListMine)
	g.GET("/bookings/:id", b.Get)

	active := middleware.RequireActiveUser(users)
	g.POST("/shows/:id/bookings", b.Create, active)
	g.POST("/bookings/:id/cancel", b.Cancel, active)
}

// RegisterAdmin registers the back office under /v1/admin.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/movies", a.CreateMovie)
	g.PUT("/movies/:id", a.UpdateMovie)
	g.DELETE("/movies/:id", a.DeleteMovie)

	g.POST("/rooms", a.CreateRoom)
	g.GET("/rooms", a.ListRooms)
	g.PATCH("/rooms/:id", a.RenameRoom)
	g.DELETE("/rooms/:id", a.DeleteRoom)
	g.GET("/rooms/:id/shows", a.ListShowsByRoom)

	g.POST("/shows", a.CreateShow)
	g.DELETE("/shows/:id", a.DeleteShow)
	g.GET("/shows/:id/bookings", a.ListShowBookings)

	g.POST("/promotions", a.CreatePromotion)
	g.GET("/promotions", a.ListPromotions)
	g.DELETE("/promotions/:id", a.DeletePromotion)

	g.GET("/users", a.ListUsers)
	g.PATCH("/users/:id", a.SetUserActive)
}
