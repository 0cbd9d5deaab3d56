package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skydesk/reservations/api"
	"github.com/skydesk/reservations/config"
	"github.com/skydesk/reservations/internal/auth"
	"github.com/skydesk/reservations/internal/bootstrap"
	"github.com/skydesk/reservations/internal/cache"
	"github.com/skydesk/reservations/internal/kafka"
	"github.com/skydesk/reservations/internal/repository"
	"github.com/skydesk/reservations/internal/service/flights"
	"github.com/skydesk/reservations/internal/service/pricing"
	"github.com/skydesk/reservations/internal/service/reports"
	"github.com/skydesk/reservations/internal/service/reservation"
	"github.com/skydesk/reservations/internal/service/users"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.ReportsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	flightRepo := repository.NewFlightRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	promotionRepo := repository.NewPromotionRepository(pool)
	planeRepo := repository.NewPlaneRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	pricingService := pricing.NewService(promotionRepo)
	flightService := flights.NewService(flightRepo, redisCache)
	reservationService := reservation.NewService(
		reservationRepo,
		flightRepo,
		pricingService,
		producer,
		cfg.Kafka.ReservationsTopic,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	reportService := reports.NewService(reportRepo, redisCache)
	userService := users.NewService(userRepo, tokens)

	router := api.NewRouter(
		tokens,
		api.NewAuthHandler(userService),
		api.NewFlightHandler(flightService),
		api.NewReservationHandler(reservationService),
		api.NewPromotionHandler(promotionRepo),
		api.NewFleetHandler(planeRepo, crewRepo),
		api.NewReportHandler(reportService),
	)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
