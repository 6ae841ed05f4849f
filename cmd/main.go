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

	bookSeatHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/book_seat"
	cancelBookingHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/cancel_booking"
	checkEligibilityHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/check_eligibility"
	getBookingHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/get_day_bookings"
	getEmployeeBookingsHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/get_employee_bookings"
	getScheduleHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/get_schedule"
	getSeatMapHandler "github.com/wissen-infra/seat-booking-service/internal/api/handlers/get_seat_map"
	"github.com/wissen-infra/seat-booking-service/internal/api/middleware"
	"github.com/wissen-infra/seat-booking-service/internal/config"
	"github.com/wissen-infra/seat-booking-service/internal/eligibility"
	bookingRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/booking"
	employeeRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/employee"
	"github.com/wissen-infra/seat-booking-service/internal/rotation"
	bookingsService "github.com/wissen-infra/seat-booking-service/internal/service/bookings"
	scheduleService "github.com/wissen-infra/seat-booking-service/internal/service/schedule"
	bookSeatUC "github.com/wissen-infra/seat-booking-service/internal/usecase/book_seat"
	"github.com/wissen-infra/seat-booking-service/pkg/dbmetrics"
	"github.com/wissen-infra/seat-booking-service/pkg/logger"
	"github.com/wissen-infra/seat-booking-service/pkg/metrics"
	"github.com/wissen-infra/seat-booking-service/pkg/simpletxmanager"
	"github.com/wissen-infra/seat-booking-service/pkg/txmanager"
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

	log.Info("Starting seat-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Параметры политики посещения офиса
	loc, err := cfg.Policy.Location()
	if err != nil {
		log.Fatal("Invalid policy timezone: %v", err)
	}
	anchor, err := cfg.Policy.Anchor(loc)
	if err != nil {
		log.Fatal("Invalid policy anchor date: %v", err)
	}
	regularCutoff, err := cfg.Policy.RegularCutoffTime()
	if err != nil {
		log.Fatal("Invalid policy regular cutoff: %v", err)
	}
	extraOpen, err := cfg.Policy.ExtraOpenTime()
	if err != nil {
		log.Fatal("Invalid policy extra open time: %v", err)
	}
	log.Info("Policy loaded: seats=%d, timezone=%s, anchor=%s, horizon=%dd, cutoff=%s, extra_open=%s",
		cfg.Policy.TotalSeats, cfg.Policy.Timezone, cfg.Policy.AnchorDate,
		cfg.Policy.AdvanceBookingDays, regularCutoff, extraOpen)

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

	// Календарь ротации и evaluator правил бронирования
	calendar := rotation.NewCalendar(loc, anchor)
	evaluator := eligibility.NewEvaluator(calendar, cfg.Policy.AdvanceBookingDays, regularCutoff, extraOpen)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		employeeRepository *employeeRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		employeeRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		bookingRepository,
		employeeRepository,
		evaluator,
		calendar,
		cfg.Policy.TotalSeats,
		log,
	)

	// Инициализируем use cases
	bookSeatUseCase := bookSeatUC.NewUseCase(
		bookingRepository,
		employeeRepository,
		evaluator,
		txMgr,
		cfg.Policy.TotalSeats,
		log,
	)

	// Инициализируем handlers
	bookSeat := bookSeatHandler.NewHandler(bookSeatUseCase, loc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getEmployeeBookings := getEmployeeBookingsHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, loc, log)
	checkEligibility := checkEligibilityHandler.NewHandler(scheduleSvc, loc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, loc, log)
	getSeatMap := getSeatMapHandler.NewHandler(scheduleSvc, loc, log)

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Активная ротационная неделя и дни батчей
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Карта мест на дату
	api.HandleFunc("/seats", getSeatMap.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Employee-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Проверка права на бронирование без создания брони
	protected.HandleFunc("/eligibility", checkEligibility.Handle).Methods(http.MethodGet)

	// Бронирование места
	protected.HandleFunc("/bookings", bookSeat.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований сотрудника
	protected.HandleFunc("/employees/{employeeId}/bookings", getEmployeeBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Список бронирований на день (только для админов)
	protected.HandleFunc("/admin/bookings", getDayBookings.Handle).Methods(http.MethodGet)

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
