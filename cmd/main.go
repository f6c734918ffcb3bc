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

	acceptBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/accept_booking"
	acknowledgePaymentHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/acknowledge_payment"
	cancelBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/decline_booking"
	getBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_booking"
	getParticipantBookingsHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_participant_bookings"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	outboxRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/outbox"
	"github.com/m04kA/SMC-CoachingService/internal/notify"
	bookingsService "github.com/m04kA/SMC-CoachingService/internal/service/bookings"
	acceptBookingUC "github.com/m04kA/SMC-CoachingService/internal/usecase/accept_booking"
	acknowledgePaymentUC "github.com/m04kA/SMC-CoachingService/internal/usecase/acknowledge_payment"
	cancelBookingUC "github.com/m04kA/SMC-CoachingService/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_booking"
	createBookingUC "github.com/m04kA/SMC-CoachingService/internal/usecase/create_booking"
	declineBookingUC "github.com/m04kA/SMC-CoachingService/internal/usecase/decline_booking"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
	"github.com/m04kA/SMC-CoachingService/pkg/metrics"
	"github.com/m04kA/SMC-CoachingService/pkg/mq"
	"github.com/m04kA/SMC-CoachingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CoachingService/pkg/txmanager"
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

	log.Info("Starting SMC-CoachingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		outboxRepository  *outboxRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, outboxRepository, txMgr, log)
	acceptBookingUseCase := acceptBookingUC.NewUseCase(bookingRepository, outboxRepository, txMgr, log)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(bookingRepository, outboxRepository, txMgr, log)
	declineBookingUseCase := declineBookingUC.NewUseCase(bookingRepository, outboxRepository, txMgr, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, outboxRepository, txMgr, log)
	acknowledgePaymentUseCase := acknowledgePaymentUC.NewUseCase(bookingRepository, outboxRepository, txMgr, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	acceptBooking := acceptBookingHandler.NewHandler(acceptBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	declineBooking := declineBookingHandler.NewHandler(declineBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	acknowledgePayment := acknowledgePaymentHandler.NewHandler(acknowledgePaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getParticipantBookings := getParticipantBookingsHandler.NewHandler(bookingSvc, log)

	// Инициализируем доставку уведомлений из outbox
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	var channel notify.NotificationChannel
	var amqpPublisher *mq.Publisher
	if cfg.Notifications.Enabled {
		amqpPublisher, err = mq.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", err)
		}
		defer amqpPublisher.Close()
		channel = notify.NewAMQPChannel(amqpPublisher)
		log.Info("Notification dispatcher will publish to exchange %s", cfg.Notifications.Exchange)
	} else {
		channel = notify.NewLogChannel(log)
		log.Info("Notification dispatcher running in log-only mode")
	}

	// Интерфейс метрик передаем только при включенных метриках,
	// иначе typed-nil сломает проверку на nil внутри диспетчера
	var dispatcherMetrics notify.Metrics
	if cfg.Metrics.Enabled {
		dispatcherMetrics = metricsCollector
	}

	dispatcher := notify.NewDispatcher(
		outboxRepository,
		channel,
		log,
		dispatcherMetrics,
		time.Duration(cfg.Notifications.PollInterval)*time.Second,
		cfg.Notifications.BatchSize,
	)
	go dispatcher.Run(dispatcherCtx)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют заголовков X-User-ID и X-User-Role
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (клиент)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Принятие бронирования тренером
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPatch)

	// Подтверждение бронирования клиентом
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Отклонение предложенных условий клиентом
	protected.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)

	// Отмена подтвержденного бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметка оплаты бронирования
	protected.HandleFunc("/bookings/{bookingId}/payment", acknowledgePayment.Handle).Methods(http.MethodPatch)

	// Коллекция бронирований участника
	protected.HandleFunc("/users/{userId}/bookings", getParticipantBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем доставку уведомлений
	stopDispatcher()

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
