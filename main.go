package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hufbook/config"
	"hufbook/database"
	bookingRepoPkg "hufbook/database/repository/booking"
	experienceRepoPkg "hufbook/database/repository/experience"
	"hufbook/handlers"
	"hufbook/middleware"
	"hufbook/routes"
	"hufbook/services/booking"
	"hufbook/services/catalog"
	"hufbook/services/payment"
	"hufbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// The catalog cache is optional; without Redis every read hits Mongo.
	var cacheClient *redis.Client
	if addr := config.AppConfig.RedisAddr; addr != "" {
		cacheClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisCacheDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx).Err(); err != nil {
			logger.Sugar().Warnf("main: redis unreachable, catalog cache disabled: %v", err)
			cacheClient = nil
		}
		cancel()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.NewRateLimiter(config.AppConfig.MaxRequestsPerMin).Middleware())

	// repositories.
	expRepo := experienceRepoPkg.NewMongoExperienceRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo(expRepo)

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:     expRepo,
		Cache:    cacheClient,
		CacheTTL: time.Minute,
		Logger:   logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:        bkRepo,
		Experiences: expRepo,
		Logger:      logger,
	}

	var gateway payment.Gateway
	if config.AppConfig.RazorpayKeyID != "" && config.AppConfig.RazorpayKeySecret != "" {
		gateway = payment.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret)
	} else {
		logger.Sugar().Warn("main: razorpay keys not configured, payment endpoints will fail")
	}
	paymentService := &payment.DefaultPaymentService{
		Bookings:    bkRepo,
		Experiences: expRepo,
		Gateway:     gateway,
		KeySecret:   config.AppConfig.RazorpayKeySecret,
		Logger:      logger,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Experience: handlers.NewExperienceHandler(catalogService),
		Booking:    handlers.NewBookingHandler(bookingService),
		Payment:    handlers.NewPaymentHandler(paymentService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
