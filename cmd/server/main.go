package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	httpapi "toolshare-backend/internal/api/http"
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/jobs"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/payment"
	"toolshare-backend/internal/push"
	"toolshare-backend/internal/realtime"
	"toolshare-backend/internal/repository/postgres"
	"toolshare-backend/internal/scheduler"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ToolShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	googleVerifier := security.NewGoogleVerifier(cfg.Google.ClientID)

	// Initialize Image Storage
	imageStore, err := storage.NewLocalImageStore(cfg.Storage.BaseURL, cfg.Storage.UploadsDir)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	logger.Info("Image storage initialized", "uploads_dir", cfg.Storage.UploadsDir)

	// Initialize Payment Gateway
	gateway := payment.NewGateway(
		cfg.Payment.BaseURL,
		cfg.Payment.KeyID,
		cfg.Payment.KeySecret,
		cfg.Payment.Currency,
	)

	// Initialize FCM push (optional)
	var pusher push.Pusher
	if cfg.Firebase.CredentialsFile != "" {
		pusher, err = push.NewFCMPusher(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM, continuing without push", "error", err)
			pusher = nil
		} else {
			logger.Info("FCM push initialized")
		}
	} else {
		logger.Info("FCM credentials not configured, push disabled")
	}

	// Initialize Websocket Hub
	hub := realtime.NewHub()

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	noteSvc := service.NewNotificationService(store.NotificationRepository, hub, pusher)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, googleVerifier)
	toolSvc := service.NewToolService(store.ToolRepository)
	cartSvc := service.NewCartService(store.CartRepository, store.ToolRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.ToolRepository,
		store.UserRepository,
		emailSvc,
		noteSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.CartRepository,
		store.ToolRepository,
		store.UserRepository,
		gateway,
		cfg.Payment.KeySecret,
		emailSvc,
		noteSvc,
	)
	chatSvc := service.NewChatService(store.ChatRepository, store.UserRepository, noteSvc, hub)
	dashboardSvc := service.NewDashboardService(store.PaymentRepository, store.ToolRepository)

	// Socket-originated chat messages go through the same service path as
	// the REST endpoint.
	hub.SetMessageHandler(func(ctx context.Context, senderID int32, msg realtime.InboundMessage) {
		if _, err := chatSvc.SendMessage(ctx, senderID, msg.To, msg.MessageID, msg.Message); err != nil {
			logger.Warn("Socket message rejected", "sender_id", senderID, "error", err)
		}
	})

	// Initialize Router
	router := httpapi.NewRouter(
		httpapi.Services{
			Auth:         authSvc,
			Tool:         toolSvc,
			Cart:         cartSvc,
			Booking:      bookingSvc,
			Payment:      paymentSvc,
			Chat:         chatSvc,
			Notification: noteSvc,
			Dashboard:    dashboardSvc,
		},
		tokenManager,
		store.UserRepository,
		hub,
		imageStore,
	)

	// Start in-process scheduler for reminder jobs
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:        emailSvc,
		Notification: noteSvc,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
