package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "carrotrent-backend/internal/api/http"
	"carrotrent-backend/internal/config"
	"carrotrent-backend/internal/jobs"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository/postgres"
	"carrotrent-backend/internal/scheduler"
	"carrotrent-backend/internal/security"
	"carrotrent-backend/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Environment overrides may come from a local .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CarrotRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sqlx.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
	passwordHasher := security.NewPasswordHasher(0)

	// Initialize Services
	accountSvc := service.NewAccountService(
		store.UserRepository,
		store.DepartmentRepository,
		tokenManager,
		passwordHasher,
		store.TransactionManager,
	)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.DepartmentRepository,
		store.VehicleRepository,
		store.UserRepository,
		store.TransactionManager,
		service.SystemClock(),
	)
	vehicleSvc := service.NewVehicleService(
		store.VehicleRepository,
		store.DepartmentRepository,
		store.TransactionManager,
	)
	departmentSvc := service.NewDepartmentService(
		store.DepartmentRepository,
		store.VehicleRepository,
		store.UserRepository,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize HTTP layer
	limiter := httpapi.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	limiter.StartCleanup(ctx, 10*time.Minute)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	router := httpapi.NewRouter(
		httpapi.Handlers{
			Rentals:     httpapi.NewRentalHandler(rentalSvc),
			Accounts:    httpapi.NewAccountHandler(accountSvc),
			Vehicles:    httpapi.NewVehicleHandler(vehicleSvc),
			Departments: httpapi.NewDepartmentHandler(departmentSvc),
		},
		httpapi.RouterOptions{
			Auth:        httpapi.NewAuthMiddleware(tokenManager, accountSvc),
			Limiter:     limiter,
			DB:          db,
			MetricsPath: metricsPath,
		},
	)

	// Optionally run the overdue report inside the API process
	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		cronScheduler, err = scheduler.NewScheduler(jobs.NewJobRunner(store.RentalRepository, cfg))
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	logger.Info("Server stopped. Goodbye!")
}
