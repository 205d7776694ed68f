package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/cancel_reservation"
	clearReservationsHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/clear_reservations"
	confirmReservationHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/delete_reservation"
	getBookedSlotsHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/get_booked_slots"
	listReservationsHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/list_reservations"
	uploadReceiptHandler "github.com/pixel-crew/twinscissors-booking/internal/api/handlers/upload_receipt"
	"github.com/pixel-crew/twinscissors-booking/internal/api/middleware"
	"github.com/pixel-crew/twinscissors-booking/internal/config"
	"github.com/pixel-crew/twinscissors-booking/internal/domain"
	reservationRepo "github.com/pixel-crew/twinscissors-booking/internal/infra/storage/reservation"
	reservationsService "github.com/pixel-crew/twinscissors-booking/internal/service/reservations"
	createReservationUC "github.com/pixel-crew/twinscissors-booking/internal/usecase/create_reservation"
	"github.com/pixel-crew/twinscissors-booking/pkg/logger"
	"github.com/pixel-crew/twinscissors-booking/pkg/metrics"
	"github.com/pixel-crew/twinscissors-booking/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TwinScissors availability store...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize storage and transaction manager
	repository := reservationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// The salon's fixed booking schedule: Tue/Wed/Thu, 09:00 AM - 07:00 PM
	schedule := domain.DefaultSchedule()

	// Initialize the service and use case
	reservationsSvc := reservationsService.NewService(repository, log)
	createReservationUseCase := createReservationUC.NewUseCase(repository, txMgr, schedule, log)

	// Initialize handlers
	getBookedSlots := getBookedSlotsHandler.NewHandler(reservationsSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	uploadReceipt := uploadReceiptHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	clearReservations := clearReservationsHandler.NewHandler(reservationsSvc, log)

	// Set up the router
	r := mux.NewRouter()

	// The widget runs in the browser on the salon's site
	r.Use(middleware.CORS)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Widget routes
	r.HandleFunc("/slots/{date}", getBookedSlots.Handle).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/book", createReservation.Handle).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/upload-receipt/{id}", uploadReceipt.Handle).Methods(http.MethodPost, http.MethodOptions)

	// Dashboard routes
	r.HandleFunc("/bookings", listReservations.Handle).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/confirm/{id}", confirmReservation.Handle).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/cancel/{id}", cancelReservation.Handle).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/delete/{id}", deleteReservation.Handle).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/clear-all", clearReservations.Handle).Methods(http.MethodPost, http.MethodOptions)

	// Create the HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
