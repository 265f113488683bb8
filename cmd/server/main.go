package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/cache"
	"github.com/otcheredev/clinic-pos/internal/config"
	"github.com/otcheredev/clinic-pos/internal/database"
	"github.com/otcheredev/clinic-pos/internal/events"
	"github.com/otcheredev/clinic-pos/internal/handlers"
	"github.com/otcheredev/clinic-pos/internal/middleware"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/repository"
	"github.com/otcheredev/clinic-pos/internal/services"
	"github.com/otcheredev/clinic-pos/internal/store"
	"github.com/otcheredev/clinic-pos/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Clinic POS service")

	// Connect to database
	if err := database.Connect(cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Initialize event publisher
	var publisher events.Publisher
	if cfg.Broker.Enabled {
		publisher = events.NewRabbitPublisher(cfg.Broker.URL)
		log.Info().Msg("Event publisher initialized")
	} else {
		publisher = events.NoopPublisher{}
		log.Info().Msg("Broker disabled, events will be discarded")
	}
	defer publisher.Close()

	// Initialize storage and repositories
	st := store.New(database.DB)
	patientRepo := repository.NewPatientRepository(st)
	appointmentRepo := repository.NewAppointmentRepository(st)
	branchRepo := repository.NewBranchRepository(st)
	userRepo := repository.NewUserRepository(st)

	// Initialize services
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	patientService := services.NewPatientService(patientRepo, branchRepo, cacheImpl)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, branchRepo, cacheImpl, publisher)
	branchService := services.NewBranchService(branchRepo, cacheImpl)
	userService := services.NewUserService(userRepo, branchRepo)
	authService := services.NewAuthService(userRepo, tokens)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(publisher)
	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	branchHandler := handlers.NewBranchHandler(branchService)
	userHandler := handlers.NewUserHandler(userService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Public routes
	r.Post("/api/auth/login", authHandler.Login)

	// Authenticated API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))

		r.Get("/patients", patientHandler.List)
		r.With(middleware.RequireRole(models.RoleAdmin, models.RoleUser)).
			Post("/patients", patientHandler.Create)

		r.Get("/appointments", appointmentHandler.List)
		r.With(middleware.RequireRole(models.RoleAdmin, models.RoleUser)).
			Post("/appointments", appointmentHandler.Create)

		r.Get("/branches", branchHandler.List)

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Put("/{id}/role", userHandler.AssignRole)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
