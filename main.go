// File: concierge/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge/config"
	"concierge/cron"
	"concierge/database"
	bookingRepo "concierge/database/repository/bookings"
	"concierge/handlers"
	"concierge/middleware"
	"concierge/routes"
	"concierge/services/dialogue"
	ai "concierge/services/intelligence"
	"concierge/services/messenger"
	"concierge/services/tasks"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	chatMode := flag.Bool("chat", false, "run an interactive terminal chat instead of the server")
	chatUser := flag.String("user", "cli_user", "user id for -chat mode")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()

	// The agent cannot classify intents or answer questions without Gemini,
	// so refuse to start rather than limp along on rule fallbacks alone.
	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Fatal("main: GEMINI_API_KEY is not set")
	}

	catalog := config.LoadHotelCatalog(config.AppConfig.HotelDataPath)

	if *chatMode {
		runChat(*chatUser, catalog)
		return
	}

	database.InitDB()
	utils.InitStateCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()

	// services.
	states := ai.NewRedisStateStore(utils.GetStateClient(), time.Duration(config.AppConfig.StateTTLHours)*time.Hour)
	language := ai.NewDefaultLanguageService(ai.NewGeminiClient(config.AppConfig.GeminiAPIKey), catalog)
	gateway := messenger.NewInstagramGateway()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	reminders := tasks.NewDefaultReminderScheduler(redisOpts, time.Duration(config.AppConfig.ReminderLeadHours)*time.Hour)

	dialogueService := &dialogue.DefaultDialogueService{
		Language:  language,
		States:    states,
		Bookings:  bookings,
		Catalog:   catalog,
		Reminders: reminders,
	}

	webhookHandler := handlers.NewWebhookHandler(gateway, dialogueService)
	chatHandler := handlers.NewChatHandler(dialogueService)
	bookingHandler := handlers.NewBookingQueryHandler(bookings)
	hotelHandler := handlers.NewHotelHandler(catalog)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		VerifyWebhookHandler:    webhookHandler.VerifyWebhookHandler,
		HandleWebhookHandler:    webhookHandler.HandleWebhookHandler,
		ChatHandler:             chatHandler.HandleChat,
		ListUserBookingsHandler: bookingHandler.ListUserBookingsHandler,
		GetBookingHandler:       bookingHandler.GetBookingHandler,
		HotelInfoHandler:        hotelHandler.HotelInfoHandler,
		RootHandler:             handlers.RootHandler,
		HealthHandler:           handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetStateClient(), database.MongoClient)
	cron.InitReminderWorker(bookings, gateway, catalog)

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
