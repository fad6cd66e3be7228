package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/handlers"
	imw "github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/middleware"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/crm"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/mailer"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/repo/postgres"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/repo/redisstore"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/service"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/config"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/database"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/events"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
	mw "github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment")
	}

	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to redis (booking sessions, idempotency cache)
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Select outbound strategies at composition time
	mail := selectMailer(cfg)
	syncer := crm.Select(cfg.Calendar)
	logger.Info("Appointment sync strategy selected", "mock_mode", cfg.Calendar.MockMode())

	// Repositories and stores
	apptRepo := postgres.NewAppointmentRepo(pool)
	sessionStore := redisstore.NewSessionStore(redisClient, cfg.Booking.SessionTTL)
	idempotencyStore := redisstore.NewIdempotencyStore(redisClient)

	// Services
	bookingService := service.NewBookingService(sessionStore, apptRepo, syncer, mail, eventBus)

	// Handlers
	contactHandler := handlers.NewContactHandler(mail, eventBus)
	appointmentsHandler := handlers.NewAppointmentsHandler(syncer, eventBus)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(apptRepo)

	// Rate limit contact submissions by client IP
	contactLimiter := imw.NewRateLimiter(pool, imw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		KeyFunc:  imw.ClientIPKeyFunc,
	})

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)

	// All origins allowed; pre-flight answered before any body parsing
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(mw.Health)

	r.Route("/v1", func(r chi.Router) {
		r.With(contactLimiter.Middleware()).Mount("/contact", contactHandler.Routes())
		r.With(mw.IdempotencyMiddleware(idempotencyStore)).Mount("/appointments", appointmentsHandler.Routes())
		r.Mount("/booking", bookingHandler.Routes())
		r.Mount("/admin", adminHandler.Routes())
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down intake API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting intake API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func selectMailer(cfg *config.Config) mailer.Service {
	m := cfg.Mail
	switch {
	case m.DevMode:
		logger.Info("Using dev mailer (emails printed to logs)")
		return mailer.NewDevMailer()
	case m.MailerSendKey != "":
		logger.Info("Using MailerSend mailer", "from", m.FromEmail)
		return mailer.NewMailer(m.MailerSendKey, m.FromName, m.FromEmail, m.ContactName, m.ContactEmail)
	default:
		logger.Info("Using SMTP mailer", "host", m.SMTPHost, "port", m.SMTPPort)
		return mailer.NewSMTPMailer(m.SMTPHost, m.SMTPPort, m.FromEmail, m.SMTPUser, m.SMTPPass, m.SMTPUseTLS, m.ContactEmail, m.ContactName)
	}
}
