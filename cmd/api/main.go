package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/salon-api/internal/config"
	availabilityHandler "github.com/jwalitptl/salon-api/internal/handler/availability"
	bookingHandler "github.com/jwalitptl/salon-api/internal/handler/booking"
	businessHandler "github.com/jwalitptl/salon-api/internal/handler/business"
	healthHandler "github.com/jwalitptl/salon-api/internal/handler/health"
	paymentHandler "github.com/jwalitptl/salon-api/internal/handler/payment"
	payoutHandler "github.com/jwalitptl/salon-api/internal/handler/payout"
	scheduleHandler "github.com/jwalitptl/salon-api/internal/handler/schedule"
	staffHandler "github.com/jwalitptl/salon-api/internal/handler/staff"
	"github.com/jwalitptl/salon-api/internal/middleware"
	"github.com/jwalitptl/salon-api/internal/repository/postgres"
	"github.com/jwalitptl/salon-api/internal/router"
	"github.com/jwalitptl/salon-api/internal/service/availability"
	bookingService "github.com/jwalitptl/salon-api/internal/service/booking"
	businessService "github.com/jwalitptl/salon-api/internal/service/business"
	eventService "github.com/jwalitptl/salon-api/internal/service/event"
	"github.com/jwalitptl/salon-api/internal/service/geo"
	paymentService "github.com/jwalitptl/salon-api/internal/service/payment"
	scheduleService "github.com/jwalitptl/salon-api/internal/service/schedule"
	settlementService "github.com/jwalitptl/salon-api/internal/service/settlement"
	staffService "github.com/jwalitptl/salon-api/internal/service/staff"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	// Repositories
	businessRepo := postgres.NewBusinessRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	walletRepo := postgres.NewWalletRepository(db)
	payoutRepo := postgres.NewPayoutRepository(db)
	outboxRepo := postgres.NewOutboxRepository(postgres.NewBaseRepository(db))

	appMetrics := metrics.NewMetrics("salon", "api")

	// Services
	events := eventService.NewService(outboxRepo)
	durations := availability.NewDurationResolver(catalogRepo, cfg.Booking.FallbackDurationMinutes)
	resolver := availability.NewResolver(scheduleRepo, staffRepo, bookingRepo, durations, nil)

	var geoResolver geo.Resolver = geo.NoopResolver{}
	if cfg.Geo.Endpoint != "" {
		geoResolver = geo.NewHTTPResolver(cfg.Geo.Endpoint)
	}

	bookings := bookingService.NewService(
		bookingRepo, catalogRepo, businessRepo,
		resolver, geoResolver, events, appLogger, appMetrics,
		cfg.Booking.FallbackDurationMinutes,
	)
	settlements := settlementService.NewService(
		bookingRepo, businessRepo, payoutRepo, walletRepo,
		events, appLogger, appMetrics,
	)
	payments := paymentService.NewService(paymentService.NewGateway(cfg.Gateway), bookingRepo, settlements)
	schedules := scheduleService.NewService(scheduleRepo)
	staffMembers := staffService.NewService(staffRepo)
	businesses := businessService.NewService(businessRepo, catalogRepo)

	// HTTP surface
	auth := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	r := router.NewRouter(
		auth,
		healthHandler.NewHandler(db),
		businessHandler.NewHandler(businesses),
		availabilityHandler.NewHandler(resolver, durations),
		scheduleHandler.NewHandler(schedules, businesses),
		staffHandler.NewHandler(staffMembers, businesses),
		bookingHandler.NewHandler(bookings),
		paymentHandler.NewHandler(payments, settlements),
		payoutHandler.NewHandler(settlements),
		router.Config{
			RateLimit:     rate.Limit(cfg.Server.RateLimit),
			RateBurst:     cfg.Server.RateBurst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "salon_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal(err, "Server forced to shutdown")
	}
	appLogger.Info("Server exited")
}
