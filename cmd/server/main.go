package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Donelpee/travelcover-insurance/internal/infrastructure/config"
	"github.com/Donelpee/travelcover-insurance/internal/infrastructure/persistence"
	"github.com/Donelpee/travelcover-insurance/internal/interface/api"
	"github.com/Donelpee/travelcover-insurance/internal/interface/provider"
	gormRepo "github.com/Donelpee/travelcover-insurance/internal/interface/repository"
	"github.com/Donelpee/travelcover-insurance/internal/usecase"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
	"github.com/Donelpee/travelcover-insurance/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogFile)
	log.Info("Starting TravelCover Notification Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection (system of record)
	gormDB, err := persistence.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up MongoDB connection (delivery log)
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	m := metrics.NewMetrics("travelcover")

	// Set up repositories
	companyRepo := gormRepo.NewGormCompanyRepository(gormDB)
	routeRepo := gormRepo.NewGormRouteRepository(gormDB)
	manifestRepo := gormRepo.NewGormManifestRepository(gormDB)
	ruleRepo := gormRepo.NewGormRuleRepository(gormDB)
	smsTemplateRepo := gormRepo.NewGormSMSTemplateRepository(gormDB)
	emailTemplateRepo := gormRepo.NewGormEmailTemplateRepository(gormDB)
	jobRepo := gormRepo.NewGormJobRepository(gormDB)
	userRepo := gormRepo.NewGormUserRepository(gormDB)
	deliveryLogRepo := gormRepo.NewMongoDeliveryLogRepository(mongoDB)

	// Set up outbound gateways
	smsGateway, err := provider.SelectSMSGateway(cfg, log)
	if err != nil {
		log.Fatal("Failed to configure SMS gateway", "error", err)
	}
	emailGateway, err := provider.SelectEmailGateway(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to configure email gateway", "error", err)
	}

	// Set up scheduling
	resolver, err := usecase.NewTripWindowResolver(cfg.ScheduleTZ)
	if err != nil {
		log.Fatal("Invalid schedule timezone", "timezone", cfg.ScheduleTZ, "error", err)
	}
	planner := usecase.NewPlanner(resolver, jobRepo, log, m, cfg.DefaultTripHours)
	manifestService := usecase.NewManifestService(manifestRepo, routeRepo, ruleRepo, jobRepo, planner, log)
	notifier := usecase.NewNotifier(manifestRepo, smsTemplateRepo, deliveryLogRepo, smsGateway, cfg.SendRatePerSec, log, m)
	dispatcher := usecase.NewDispatcher(jobRepo, deliveryLogRepo, smsGateway, emailGateway, cfg.SendRatePerSec, cfg.DispatchBatchSize, log, m)
	authService := usecase.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, log)

	// Start the dispatch loop
	c := cron.New()
	_, err = c.AddFunc(fmt.Sprintf("@every %s", cfg.DispatchInterval), func() {
		if err := dispatcher.RunOnce(ctx); err != nil {
			log.Error("Dispatch pass failed", "error", err)
		}
	})
	if err != nil {
		log.Fatal("Failed to schedule dispatch loop", "error", err)
	}
	c.Start()

	// Set up HTTP server
	router := api.NewRouter(
		authService,
		api.NewAuthHandler(authService),
		api.NewCatalogHandler(companyRepo, routeRepo, ruleRepo, smsTemplateRepo, emailTemplateRepo),
		api.NewManifestHandler(manifestRepo, manifestService, notifier),
		api.NewJobHandler(jobRepo, deliveryLogRepo),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
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

	// Stop the cron and wait for a running pass to finish
	<-c.Stop().Done()

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("TravelCover Notification Service stopped")
}
