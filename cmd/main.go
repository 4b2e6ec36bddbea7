package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"

	cancelBookingHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/cancel_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_catalog"
	getSessionHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_session"
	healthHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/list_bookings"
	navigateSessionHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/navigate_session"
	startSessionHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/start_session"
	submitSessionHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/submit_session"
	updateDraftHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/update_draft"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/config"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/queue"
	bookingsService "github.com/m04kA/SMC-SpaBooking/internal/service/bookings"
	sessionsService "github.com/m04kA/SMC-SpaBooking/internal/service/sessions"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SpaBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Каталог услуг и массажистов
	cat, err := loadCatalog(cfg)
	if err != nil {
		log.Fatal("Failed to load catalog: %v", err)
	}
	log.Info("Catalog loaded: services=%d, therapists=%d, slots=%d",
		len(cat.Services()), len(cat.Therapists()), len(cat.TimeSlots()))

	// Хранилище бронирований
	store, err := openStorage(cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to open booking storage (driver=%s): %v", cfg.Storage.Driver, err)
	}
	defer store.close()

	// Хранилище сессий мастера
	sessions, closeSessions, err := openSessionStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to open session store (store=%s): %v", cfg.Sessions.Store, err)
	}
	defer closeSessions()

	// Карточки клиентов: через очередь asynq или синхронно
	var (
		customerRecorder sessionsService.CustomerRecorder = sessionsService.NewDirectCustomerRecorder(store.customers)
		queueClient      *asynq.Client
		worker           *queue.Worker
	)

	if cfg.Queue.Enabled {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Queue.RedisDB,
		}

		queueClient = asynq.NewClient(redisOpt)
		customerRecorder = queue.NewCustomerRecorder(queueClient, cfg.Queue.Name, cfg.Queue.MaxRetry, cfg.Queue.Timeout())

		server := asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues:      map[string]int{cfg.Queue.Name: 1},
			Logger:      log.Zap().Sugar(),
		})
		worker = queue.NewWorker(server, store.customers, log)
		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start queue worker: %v", err)
		}
		log.Info("Customer queue enabled (queue=%s, concurrency=%d)", cfg.Queue.Name, cfg.Queue.Concurrency)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.bookings, log)
	sessionSvc := sessionsService.NewService(
		sessions,
		store.bookings,
		cat,
		customerRecorder,
		metricsCollector,
		cfg.Wizard.SubmitTimeout(),
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store.bookings, cat, log)

	// Инициализируем handlers
	getCatalog := getCatalogHandler.NewHandler(cat, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	startSession := startSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	updateDraft := updateDraftHandler.NewHandler(sessionSvc, log)
	submitSession := submitSessionHandler.NewHandler(sessionSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(map[string]healthHandler.Pinger{
		"storage":  store.bookings,
		"sessions": sessions,
	}, log)

	navigation := make(map[navigateSessionHandler.Action]*navigateSessionHandler.Handler)
	for _, action := range []navigateSessionHandler.Action{
		navigateSessionHandler.ActionAdvance,
		navigateSessionHandler.ActionRetreat,
		navigateSessionHandler.ActionReset,
	} {
		h, err := navigateSessionHandler.NewHandler(sessionSvc, action, log)
		if err != nil {
			log.Fatal("Failed to create navigation handler: %v", err)
		}
		navigation[action] = h
	}

	submitLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// --- Каталог ---
	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Мастер бронирования ---
	api.HandleFunc("/sessions", startSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/draft", updateDraft.Handle).Methods(http.MethodPut)
	for action, h := range navigation {
		api.HandleFunc("/sessions/{sessionId}/"+string(action), h.Handle).Methods(http.MethodPost)
	}

	// Отправка бронирования с ограничением частоты
	api.Handle("/sessions/{sessionId}/submit",
		submitLimiter.Middleware(http.HandlerFunc(submitSession.Handle))).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
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

	// Останавливаем очередь после HTTP, чтобы принять последние задачи
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Failed to close queue client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
