package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/app/delivery/http/controllers"
	"eduvoyage-service/internal/app/delivery/http/middlewares"
	"eduvoyage-service/internal/app/delivery/http/routers"
	"eduvoyage-service/internal/app/drivers/database"
	"eduvoyage-service/internal/app/drivers/logger"
	"eduvoyage-service/internal/app/drivers/messaging"
	"eduvoyage-service/internal/app/services/core/availability"
	"eduvoyage-service/internal/app/services/core/bookings"
	"eduvoyage-service/internal/app/services/core/capability"
	"eduvoyage-service/internal/app/services/core/notifications"
	"eduvoyage-service/internal/app/services/core/overlay"
	"eduvoyage-service/internal/app/services/shared/calendar"
	"eduvoyage-service/internal/app/services/shared/notifyqueue"
	redisrepo "eduvoyage-service/internal/app/services/shared/redis"
	"eduvoyage-service/internal/pkg/displaytime"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	zone, err := displaytime.LoadZone(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Invalid display timezone", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}

	// Redis backs the provider token cache and the cross-replica overlay.
	// Without it the process runs standalone on an in-memory overlay.
	var tokenCache contracts.RedisRepository
	var overlayService contracts.OverlayService
	if driverConfig.Redis.Host != "" {
		redisClient := database.NewRedisClient(driverConfig)
		tokenCache = redisrepo.NewRedisRepository(redisClient)
		overlayService = overlay.NewOverlayService(tokenCache, log)
	} else {
		memoryOverlay := overlay.NewMemoryOverlayService(log)
		overlayService = memoryOverlay

		pruner := cron.New()
		if _, err := pruner.AddFunc("@hourly", memoryOverlay.Prune); err == nil {
			pruner.Start()
			defer pruner.Stop()
		}
	}

	// Shared services
	calendarClient := calendar.NewZoomService(internalConfig, zone, tokenCache, log)
	capabilityService := capability.NewCapabilityService(internalConfig)

	// Notifications: queue-backed with a worker when a broker is configured,
	// otherwise fire-and-forget straight at the webhook.
	sender := notifications.NewSender(internalConfig.Webhook)
	notifier := notifications.NewDirectNotifier(sender, log)
	var worker *notifications.Worker
	if driverConfig.RabbitMQ.Host != "" {
		rabbitConn := messaging.NewRabbitMQ(driverConfig)
		defer rabbitConn.Close()

		queueService, err := notifyqueue.NewService(rabbitConn, log, 10)
		if err != nil {
			log.Fatal("Failed to set up notification queues", zap.Error(err))
		}
		notifier = notifications.NewQueueNotifier(queueService, log)
		worker = notifications.NewWorker(log, internalConfig.Webhook, queueService, sender)
		worker.Start(context.Background())
		defer worker.Stop()
	}

	// Core usecases
	availabilityUsecase, err := availability.NewAvailabilityUsecase(calendarClient, overlayService, zone, internalConfig, log)
	if err != nil {
		log.Fatal("Invalid booking configuration", zap.Error(err))
	}
	bookingUsecase := bookings.NewBookingUsecase(
		calendarClient,
		availabilityUsecase,
		overlayService,
		capabilityService,
		notifier,
		zone,
		internalConfig,
		log,
	)

	// HTTP delivery
	availabilityController := controllers.NewAvailabilityController(log, availabilityUsecase)
	bookingController := controllers.NewBookingController(log, bookingUsecase)
	mws := &middlewares.Middlewares{Log: log, InternalConfig: internalConfig}

	chiRouter := chi.NewRouter()
	chiRouter.Use(mws.RequestIDMiddleware)
	chiRouter.Use(mws.Logging(log))
	routers.SetupRoutes(chiRouter, internalConfig, mws, availabilityController, bookingController)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", internalConfig.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("Waiting for pending requests to be processed before shutdown")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}
