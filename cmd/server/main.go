package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/config"
	"weighbridge-backend/internal/database"
	"weighbridge-backend/internal/db"
	"weighbridge-backend/internal/handlers"
	"weighbridge-backend/internal/health"
	h "weighbridge-backend/internal/http"
	"weighbridge-backend/internal/middleware"
	"weighbridge-backend/internal/monitoring"
	"weighbridge-backend/internal/repositories"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "override server port")
	flag.Parse()

	cfg := config.Load()
	if *port > 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := pool.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("database unreachable: %v", err)
	}
	cancel()

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, customer lookups go straight to the database: %v", err)
	} else {
		log.Println("[Cache] Redis connected")
	}

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	entryRepo := repositories.NewEntryRepository(pool)
	transactionRepo := repositories.NewTransactionRepository(pool)

	// Services
	customerService := services.NewCustomerService(customerRepo)
	entryService := services.NewEntryService(entryRepo, customerRepo)
	settlementService := services.NewSettlementService(entryRepo, customerRepo, transactionRepo)
	reportService := services.NewReportService(transactionRepo)
	backupService := services.NewBackupService(reportService, cfg)
	razorpayService := services.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, customerRepo)

	backupService.Start()
	defer backupService.Stop()

	// Yard board on its own port
	board := monitoring.NewServer(pool, cfg.Monitoring.Port)
	go board.Start()

	// Handlers
	keeper := auth.NewGateKeeper(cfg)
	accessHandler := handlers.NewAccessHandler(keeper)
	customerHandler := handlers.NewCustomerHandler(customerService)
	entryHandler := handlers.NewEntryHandler(entryService, board)
	transactionHandler := handlers.NewTransactionHandler(settlementService, reportService, board)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(backupService)
	paymentHandler := handlers.NewPaymentHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	gate := middleware.NewGateMiddleware(keeper)
	router := h.NewRouter(
		accessHandler,
		customerHandler,
		entryHandler,
		transactionHandler,
		reportHandler,
		backupHandler,
		paymentHandler,
		healthHandler,
		gate,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			corsMiddleware(
				middleware.RequestID(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Weighbridge server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
