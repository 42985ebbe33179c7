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

	blockSlotHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/cancel_booking"
	cancelPaymentHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/cancel_payment"
	confirmPaymentHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/create_booking"
	createPaymentOrderHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/create_payment_order"
	getBookingHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/get_booking"
	getTimeSlotsHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/get_time_slots"
	getUserBookingsHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/get_user_bookings"
	unblockSlotHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/unblock_slot"
	verifyPaymentHandler "github.com/m04kA/SCB-BookingService/internal/api/handlers/verify_payment"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	"github.com/m04kA/SCB-BookingService/internal/config"
	blockedSlotRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/court"
	paymentOrderRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/paymentorder"
	facilityServiceClient "github.com/m04kA/SCB-BookingService/internal/integrations/facilityservice"
	payProviderClient "github.com/m04kA/SCB-BookingService/internal/integrations/payprovider"
	bookingsService "github.com/m04kA/SCB-BookingService/internal/service/bookings"
	timeSlotsService "github.com/m04kA/SCB-BookingService/internal/service/timeslots"
	cancelPaymentUC "github.com/m04kA/SCB-BookingService/internal/usecase/cancel_payment"
	createBookingUC "github.com/m04kA/SCB-BookingService/internal/usecase/create_booking"
	createPaymentOrderUC "github.com/m04kA/SCB-BookingService/internal/usecase/create_payment_order"
	getAvailabilityUC "github.com/m04kA/SCB-BookingService/internal/usecase/get_availability"
	verifyPaymentUC "github.com/m04kA/SCB-BookingService/internal/usecase/verify_payment"
	"github.com/m04kA/SCB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SCB-BookingService/pkg/logger"
	"github.com/m04kA/SCB-BookingService/pkg/metrics"
	"github.com/m04kA/SCB-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SCB-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SCB-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	)
	payClient := payProviderClient.NewClient(
		cfg.Payment.BaseURL,
		cfg.Payment.KeyID,
		cfg.Payment.KeySecret,
		time.Duration(cfg.Payment.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FacilityService=%s timeout=%ds, PayProvider=%s timeout=%ds)",
		cfg.FacilityService.URL, cfg.FacilityService.Timeout, cfg.Payment.BaseURL, cfg.Payment.Timeout)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		courtRepository        *courtRepo.Repository
		blockedSlotRepository  *blockedSlotRepo.Repository
		paymentOrderRepository *paymentOrderRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		blockedSlotRepository = blockedSlotRepo.NewRepository(wrappedDB)
		paymentOrderRepository = paymentOrderRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		blockedSlotRepository = blockedSlotRepo.NewRepository(db)
		paymentOrderRepository = paymentOrderRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		facilityClient,
		txMgr,
		log,
	)
	timeSlotSvc := timeSlotsService.NewService(
		blockedSlotRepository,
		courtRepository,
		facilityClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		courtRepository,
		txMgr,
		&createBookingUC.RealTimeProvider{},
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		blockedSlotRepository,
		courtRepository,
		log,
	)
	createPaymentOrderUseCase := createPaymentOrderUC.NewUseCase(
		bookingRepository,
		paymentOrderRepository,
		payClient,
		cfg.Payment.Currency,
		log,
	)
	verifyPaymentUseCase := verifyPaymentUC.NewUseCase(
		paymentOrderRepository,
		bookingSvc,
		payClient,
		log,
	)
	cancelPaymentUseCase := cancelPaymentUC.NewUseCase(
		paymentOrderRepository,
		bookingSvc,
		log,
	)

	// Инициализируем handlers
	getTimeSlots := getTimeSlotsHandler.NewHandler(getAvailabilityUseCase, log)
	blockSlot := blockSlotHandler.NewHandler(timeSlotSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(timeSlotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createPaymentOrder := createPaymentOrderHandler.NewHandler(createPaymentOrderUseCase, log)
	verifyPayment := verifyPaymentHandler.NewHandler(verifyPaymentUseCase, log)
	cancelPayment := cancelPaymentHandler.NewHandler(cancelPaymentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание слотов корта на дату
	api.HandleFunc("/courts/{courtId}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Блокировки слотов (владелец площадки) ---
	protected.HandleFunc("/time-slots/block", blockSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/time-slots/{blockId}", unblockSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payment/orders", createPaymentOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payment/verify", verifyPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payment/cancel", cancelPayment.Handle).Methods(http.MethodPost)

	// Фоновая зачистка просроченных pending-бронирований
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	go runPendingSweeper(sweeperCtx, bookingSvc, cfg.Booking, log)

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

	stopSweeper()

	// Останавливаем сбор метрик connection pool
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

// runPendingSweeper периодически отменяет pending-бронирования, оставшиеся
// без оплаты дольше настроенного TTL
func runPendingSweeper(ctx context.Context, svc *bookingsService.Service, cfg config.BookingConfig, log *logger.Logger) {
	ttl := time.Duration(cfg.PendingTTL) * time.Minute
	interval := time.Duration(cfg.SweepInterval) * time.Minute

	log.Info("Pending sweeper started (ttl=%s, interval=%s)", ttl, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := svc.ExpireStalePending(ctx, ttl); err != nil {
				log.Error("Pending sweeper: %v", err)
			}
		case <-ctx.Done():
			log.Info("Pending sweeper stopped")
			return
		}
	}
}
