package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bricker/vivial-sub000/config"
	"github.com/bricker/vivial-sub000/cron"
	"github.com/bricker/vivial-sub000/database"
	"github.com/bricker/vivial-sub000/database/repository"
	"github.com/bricker/vivial-sub000/handlers"
	"github.com/bricker/vivial-sub000/middleware"
	"github.com/bricker/vivial-sub000/routes"
	"github.com/bricker/vivial-sub000/services/account"
	"github.com/bricker/vivial-sub000/services/booking"
	"github.com/bricker/vivial-sub000/services/outing"
	"github.com/bricker/vivial-sub000/services/tasks"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	accountRepo := repository.NewMongoAccountRepo()
	outingRepo := repository.NewMongoOutingRepo()
	bookingRepo := repository.NewMongoBookingRepo()
	reserverRepo := repository.NewMongoReserverDetailsRepo()
	venueRepo := repository.NewMongoVenueRepo()

	// services.
	accountService := &account.DefaultAccountService{
		Repo:      accountRepo,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}

	rerollLimiter := outing.NewRedisRerollLimiter(
		utils.GetRerollCacheClient(),
		config.AppConfig.RerollLimitUnauthenticated,
		time.Duration(config.AppConfig.RerollWindowHours)*time.Hour,
	)
	outingService := &outing.DefaultOutingService{
		Outings: outingRepo,
		Venues:  venueRepo,
		Limiter: rerollLimiter,
		Logger:  logger,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := tasks.NewAsynqReminderScheduler(asynqClient, logger)

	sessionStore := booking.NewRedisCheckoutSessionStore()
	reserverService := &booking.DefaultReserverDetailsService{
		Repo:     reserverRepo,
		Verifier: accountService,
		Logger:   logger,
	}
	confirmer := &booking.DefaultBookingConfirmation{
		Repo:      bookingRepo,
		Sessions:  sessionStore,
		Verifier:  accountService,
		Reminders: reminderScheduler,
		Logger:    logger,
	}
	checkoutService := &booking.DefaultCheckoutService{
		Reserver:  reserverService,
		Payments:  booking.NewStripePaymentProcessor(logger),
		Confirmer: confirmer,
		Sessions:  sessionStore,
		Verifier:  accountService,
		Bookings:  bookingRepo,
		Outings:   outingRepo,
		Accounts:  accountRepo,
		Logger:    logger,
	}

	// Start the reminder worker.
	cron.InitReminderWorker(bookingRepo)

	accountHandler := handlers.NewAccountHandler(accountService)
	outingHandler := handlers.NewOutingHandler(outingService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, reserverService)
	bookingHandler := handlers.NewBookingHandler(checkoutService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AccountRepo: accountRepo,

		// Account endpoints.
		SignUpHandler:  accountHandler.SignUpHandler,
		SignInHandler:  accountHandler.SignInHandler,
		SignOutHandler: accountHandler.SignOutHandler,
		ViewerHandler:  accountHandler.ViewerHandler,

		// Outing endpoints.
		PlanOutingHandler:   outingHandler.PlanOutingHandler,
		RerollOutingHandler: outingHandler.RerollOutingHandler,
		GetOutingHandler:    outingHandler.GetOutingHandler,

		// Checkout endpoints.
		InitiateCheckoutHandler:   checkoutHandler.InitiateCheckoutHandler,
		SubmitCheckoutHandler:     checkoutHandler.SubmitCheckoutHandler,
		GetReserverDetailsHandler: checkoutHandler.GetReserverDetailsHandler,

		// Booking endpoints.
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		CancelBookingHandler: bookingHandler.CancelBookingHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Periodic dependency health checks feed the /health endpoint.
	utils.StartHealthMonitor(
		[]*redis.Client{
			utils.GetCheckoutCacheClient(),
			utils.GetAuthCacheClient(),
			utils.GetRerollCacheClient(),
		},
		database.MongoClient,
	)

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
