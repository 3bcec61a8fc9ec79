package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/config"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/database"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/handler"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/mail"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/middleware"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/queue"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/router"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/service"
	"github.com/nikita-jha/cinema-booking-service-sub000/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger.Init(cfg.Env)
	log := logger.WithComponent("server")
	defer logger.Sync()

	pool := database.Pool{
		MaxOpen: cfg.DBMaxOpenConns,
		MaxIdle: cfg.DBMaxIdleConns,
		ConnTTL: time.Duration(cfg.DBConnTTLMin) * time.Minute,
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, pool)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migCtx, db); err != nil {
		cancel()
		log.Fatal("migrations failed", zap.Error(err))
	}
	cancel()

	// Redis is optional: with no client the cache becomes a pass-through
	// and the rate limiter fails open.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	movies := repository.NewMovieRepo(db)
	rooms := repository.NewRoomRepo(db)
	shows := repository.NewShowRepo(db)
	seats := repository.NewSeatRepo(db)
	promos := repository.NewPromotionRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	schedule := service.NewScheduleService(shows)
	publisher := queue.NewPublisher(cfg.AMQPURL)
	booking := service.NewBookingService(db, movies, rooms, shows, seats, promos, bookings, users, publisher)

	mailer := mail.NewFileMailer(cfg.MailFrom, "")
	go queue.NewConsumer(cfg.AMQPURL, mailer).Run()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterHealth(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, mailer), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(movies, rooms, shows, seats, promos), cache)
	router.RegisterBooking(e, handler.NewBookingHandler(booking, bookings), users, cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(movies, rooms, shows, seats, promos, bookings, users, schedule), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
