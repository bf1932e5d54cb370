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

	"github.com/vkotelnikov/HVS-VisitService/internal/api/handlers"
	bookAppointmentHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/get_available_slots"
	getVisitorAppointmentsHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/get_visitor_appointments"
	regenerateSlotsHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/regenerate_slots"
	resolvePolicyHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/resolve_policy"
	updateStatusHandler "github.com/vkotelnikov/HVS-VisitService/internal/api/handlers/update_appointment_status"
	"github.com/vkotelnikov/HVS-VisitService/internal/api/middleware"
	"github.com/vkotelnikov/HVS-VisitService/internal/config"
	appointmentRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/appointment"
	exceptionRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/exception"
	hospitalRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/hospital"
	locationUnitRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/locationunit"
	ruleSetRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/ruleset"
	slotRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/slot"
	visitorRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/visitor"
	appointmentsService "github.com/vkotelnikov/HVS-VisitService/internal/service/appointments"
	hierarchyService "github.com/vkotelnikov/HVS-VisitService/internal/service/hierarchy"
	bookAppointmentUC "github.com/vkotelnikov/HVS-VisitService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/vkotelnikov/HVS-VisitService/internal/usecase/get_available_slots"
	regenerateSlotsUC "github.com/vkotelnikov/HVS-VisitService/internal/usecase/regenerate_slots"
	resolvePolicyUC "github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
	"github.com/vkotelnikov/HVS-VisitService/pkg/dbmetrics"
	"github.com/vkotelnikov/HVS-VisitService/pkg/logger"
	"github.com/vkotelnikov/HVS-VisitService/pkg/metrics"
	"github.com/vkotelnikov/HVS-VisitService/pkg/simpletxmanager"
	"github.com/vkotelnikov/HVS-VisitService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HVS-VisitService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Transaction manager interface shared by the booking and regeneration
	// use cases.
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	var (
		hospitalRepository     *hospitalRepo.Repository
		locationUnitRepository *locationUnitRepo.Repository
		ruleSetRepository      *ruleSetRepo.Repository
		exceptionRepository    *exceptionRepo.Repository
		slotRepository         *slotRepo.Repository
		visitorRepository      *visitorRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")

		hospitalRepository = hospitalRepo.NewRepository(wrappedDB)
		locationUnitRepository = locationUnitRepo.NewRepository(wrappedDB)
		ruleSetRepository = ruleSetRepo.NewRepository(wrappedDB)
		exceptionRepository = exceptionRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		visitorRepository = visitorRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		hospitalRepository = hospitalRepo.NewRepository(db)
		locationUnitRepository = locationUnitRepo.NewRepository(db)
		ruleSetRepository = ruleSetRepo.NewRepository(db)
		exceptionRepository = exceptionRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		visitorRepository = visitorRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Services
	hierarchySvc := hierarchyService.NewService(locationUnitRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, slotRepository, log)

	// Use cases
	resolvePolicyUseCase := resolvePolicyUC.NewUseCase(
		hierarchySvc,
		hospitalRepository,
		ruleSetRepository,
		exceptionRepository,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		resolvePolicyUseCase,
		hierarchySvc,
		slotRepository,
		appointmentRepository,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		visitorRepository,
		hierarchySvc,
		txMgr,
		log,
	)

	regenerateSlotsUseCase := regenerateSlotsUC.NewUseCase(
		locationUnitRepository,
		resolvePolicyUseCase,
		slotRepository,
		txMgr,
		log,
	)

	// Handlers
	resolvePolicy := resolvePolicyHandler.NewHandler(resolvePolicyUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	getVisitorAppointments := getVisitorAppointmentsHandler.NewHandler(appointmentsSvc, log)
	regenerateSlots := regenerateSlotsHandler.NewHandler(regenerateSlotsUseCase, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			log.Error("Health check failed: %v", err)
			handlers.RespondServiceUnavailable(w, "database unreachable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: anyone can inspect a bed's policy and open slots.
	api.HandleFunc("/beds/{bedId}/policy", resolvePolicy.Handle).Methods(http.MethodGet)
	api.HandleFunc("/beds/{bedId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Protected routes: require X-Visitor-ID or X-Staff-ID.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/visitors/{visitorId}/appointments", getVisitorAppointments.Handle).Methods(http.MethodGet)

	// Staff-only routes: approval workflow and slot administration.
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffOnly)

	staff.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/location-units/{unitId}/slots/regenerate", regenerateSlots.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
