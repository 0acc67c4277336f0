package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charterquote-service/internal/domain/entity"
	"charterquote-service/internal/infrastructure/config"
	"charterquote-service/internal/infrastructure/persistence"
	"charterquote-service/internal/interface/httpapi"
	storeRepo "charterquote-service/internal/interface/repository"
	"charterquote-service/internal/usecase"
	"charterquote-service/pkg/cache"
	"charterquote-service/pkg/logger"
	"charterquote-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Charter Quote Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the quote audit trail
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL for the airport directory and fleet
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	airportRepository := storeRepo.NewGormAirportRepository(gormDB)
	aircraftRepository := storeRepo.NewGormAircraftRepository(gormDB, log)
	quoteRecordRepository := storeRepo.NewMongoQuoteRecordRepository(db)

	// Set up metrics and the quoting pipeline
	serviceMetrics := metrics.NewMetrics("charterquote")
	resolutionCache := cache.New[entity.ResolvedLocation](cfg.CacheTTL)
	resolver := usecase.NewLocationResolver(airportRepository, resolutionCache, serviceMetrics, log, cfg.QueryTimeout)
	pricer := usecase.NewPricer(cfg.OvernightFee, cfg.ParkingSurcharge, cfg.Currency)
	quoteService := usecase.NewQuoteService(
		airportRepository,
		aircraftRepository,
		quoteRecordRepository,
		resolver,
		pricer,
		serviceMetrics,
		log,
		cfg.SearchRadiusKm,
		cfg.QueryTimeout,
	)

	// Set up HTTP server
	mux := http.NewServeMux()
	httpapi.NewHandler(quoteService, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Charter Quote Service stopped")
}
