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

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	cancelBookingHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/create_booking"
	createClientHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/create_client"
	createServiceHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/create_service"
	getAnalyticsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_analytics"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_booking"
	getClientHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_client"
	getClientBookingsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_client_bookings"
	getMasterHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_master"
	getMasterBookingsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_master_bookings"
	getMasterClientsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_master_clients"
	getMasterSettingsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_master_settings"
	getServiceHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_service"
	getWalletHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/get_wallet"
	healthHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/health"
	listMasterServicesHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/list_master_services"
	loginHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/login"
	markNoShowHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/mark_no_show"
	quoteDepositHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/quote_deposit"
	registerHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/register"
	updateMasterProfileHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/update_master_profile"
	updateMasterSettingsHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/update_master_settings"
	updateServiceHandler "github.com/m04kA/SMC-SlottaService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SlottaService/internal/api/middleware"
	"github.com/m04kA/SMC-SlottaService/internal/config"
	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	bookingRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/client"
	masterRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/master"
	"github.com/m04kA/SMC-SlottaService/internal/infra/storage/migrations"
	offeringRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/offering"
	transactionRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/transaction"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/email"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/payments"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/telegram"
	"github.com/m04kA/SMC-SlottaService/internal/scheduler"
	"github.com/m04kA/SMC-SlottaService/internal/security"
	analyticsService "github.com/m04kA/SMC-SlottaService/internal/service/analytics"
	bookingsService "github.com/m04kA/SMC-SlottaService/internal/service/bookings"
	clientsService "github.com/m04kA/SMC-SlottaService/internal/service/clients"
	mastersService "github.com/m04kA/SMC-SlottaService/internal/service/masters"
	notificationsService "github.com/m04kA/SMC-SlottaService/internal/service/notifications"
	offeringsService "github.com/m04kA/SMC-SlottaService/internal/service/offerings"
	walletService "github.com/m04kA/SMC-SlottaService/internal/service/wallet"
	cancelBookingUC "github.com/m04kA/SMC-SlottaService/internal/usecase/cancel_booking"
	completeBookingUC "github.com/m04kA/SMC-SlottaService/internal/usecase/complete_booking"
	createBookingUC "github.com/m04kA/SMC-SlottaService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SlottaService/internal/usecase/get_available_slots"
	markNoShowUC "github.com/m04kA/SMC-SlottaService/internal/usecase/mark_no_show"
	quoteDepositUC "github.com/m04kA/SMC-SlottaService/internal/usecase/quote_deposit"
	runPayoutsUC "github.com/m04kA/SMC-SlottaService/internal/usecase/run_payouts"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/logger"
	"github.com/m04kA/SMC-SlottaService/pkg/metrics"
	"github.com/m04kA/SMC-SlottaService/pkg/txmanager"
)

// Сторонние интеграции: реальный клиент при enabled = true, иначе заглушка в лог
type (
	paymentGateway interface {
		AuthorizeHold(ctx context.Context, req payments.HoldRequest) (*payments.Hold, error)
		CaptureHold(ctx context.Context, intentID string, amount decimal.Decimal) (*payments.Capture, error)
		ReleaseHold(ctx context.Context, intentID string) error
		Payout(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error)
	}
	emailSender    = notificationsService.EmailSender
	telegramSender = notificationsService.TelegramSender
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

	log.Info("Starting SMC-SlottaService...")
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

	// Ждем базу: в docker-compose сервис может стартовать раньше postgres
	if err := waitForDB(db, time.Duration(cfg.Database.ConnectTimeout)*time.Second, log); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.RunMigrations(context.Background(), db); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// С выключенными метриками обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	masterRepository := masterRepo.NewRepository(wrappedDB)
	offeringRepository := offeringRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	transactionRepository := transactionRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Доменные настройки
	calculator, err := deposit.NewCalculator(cfg.Deposit.Policy())
	if err != nil {
		log.Fatal("Invalid deposit policy: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	peakWindows, err := cfg.Booking.Windows()
	if err != nil {
		log.Fatal("Invalid peak windows: %v", err)
	}
	minPayout := decimal.NewFromFloat(cfg.Scheduler.MinPayout)

	// Инициализируем интеграционных клиентов
	var paymentsGateway paymentGateway
	if cfg.Payments.Enabled {
		paymentsGateway = payments.NewStripeGateway(cfg.Payments.SecretKey, cfg.Payments.Currency, log)
	} else {
		paymentsGateway = payments.NewMockGateway(log)
	}

	var mailer emailSender
	if cfg.Email.Enabled {
		mailer = email.NewSendGridSender(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, log)
	} else {
		mailer = email.NewMockSender(log)
	}

	var bot telegramSender
	if cfg.Telegram.Enabled {
		botNotifier, err := telegram.NewBotNotifier(cfg.Telegram.BotToken, log)
		if err != nil {
			log.Fatal("Failed to init telegram bot: %v", err)
		}
		bot = botNotifier
	} else {
		bot = telegram.NewMockNotifier(log)
	}
	log.Info("Integration clients initialized (payments=%t, email=%t, telegram=%t)",
		cfg.Payments.Enabled, cfg.Email.Enabled, cfg.Telegram.Enabled)

	notifier := notificationsService.NewService(mailer, bot, log)

	// Инициализируем сервисы
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL())
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)

	masterSvc := mastersService.NewService(masterRepository, hasher, tokens, log)
	offeringSvc := offeringsService.NewService(offeringRepository, calculator, log)
	clientSvc := clientsService.NewService(clientRepository, bookingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	walletSvc := walletService.NewService(transactionRepository, minPayout, log)
	analyticsSvc := analyticsService.NewService(bookingRepository, clientRepository, transactionRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(createBookingUC.Deps{
		BookingRepo:     bookingRepository,
		MasterRepo:      masterRepository,
		OfferingRepo:    offeringRepository,
		ClientRepo:      clientRepository,
		TransactionRepo: transactionRepository,
		Calculator:      calculator,
		Payments:        paymentsGateway,
		Notifier:        notifier,
		Metrics:         metricsCollector,
		TxManager:       txMgr,
		PeakWindows:     peakWindows,
		Location:        location,
		Logger:          log,
	})

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		masterRepository,
		offeringRepository,
		clientRepository,
		calculator,
		peakWindows,
		location,
		log,
	)

	quoteDepositUseCase := quoteDepositUC.NewUseCase(
		offeringRepository,
		clientRepository,
		calculator,
		metricsCollector,
		log,
	)

	completeBookingUseCase := completeBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		transactionRepository,
		paymentsGateway,
		metricsCollector,
		txMgr,
		log,
	)

	markNoShowUseCase := markNoShowUC.NewUseCase(
		bookingRepository,
		masterRepository,
		clientRepository,
		transactionRepository,
		paymentsGateway,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		masterRepository,
		clientRepository,
		transactionRepository,
		paymentsGateway,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)

	runPayoutsUseCase := runPayoutsUC.NewUseCase(
		masterRepository,
		transactionRepository,
		paymentsGateway,
		notifier,
		txMgr,
		minPayout,
		log,
	)

	// Инициализируем handlers
	register := registerHandler.NewHandler(masterSvc, log)
	login := loginHandler.NewHandler(masterSvc, log)
	getMaster := getMasterHandler.NewHandler(masterSvc, log)
	updateMasterProfile := updateMasterProfileHandler.NewHandler(masterSvc, log)
	getMasterSettings := getMasterSettingsHandler.NewHandler(masterSvc, log)
	updateMasterSettings := updateMasterSettingsHandler.NewHandler(masterSvc, log)

	createService := createServiceHandler.NewHandler(offeringSvc, log)
	updateService := updateServiceHandler.NewHandler(offeringSvc, log)
	getService := getServiceHandler.NewHandler(offeringSvc, log)
	listMasterServices := listMasterServicesHandler.NewHandler(offeringSvc, log)

	createClient := createClientHandler.NewHandler(clientSvc, log)
	getClient := getClientHandler.NewHandler(clientSvc, log)
	getMasterClients := getMasterClientsHandler.NewHandler(clientSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getMasterBookings := getMasterBookingsHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)

	quoteDeposit := quoteDepositHandler.NewHandler(quoteDepositUseCase, log)
	getWallet := getWalletHandler.NewHandler(walletSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(analyticsSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Публичная страница записи
	api.HandleFunc("/book/{slug}", getMaster.HandleBySlug).Methods(http.MethodGet)

	// --- Клиенты ---
	api.HandleFunc("/clients", createClient.Handle).Methods(http.MethodPost)
	api.HandleFunc("/clients", getClient.HandleByEmail).Methods(http.MethodGet).Queries("email", "{email}")
	api.HandleFunc("/clients/{clientId:[0-9]+}", getClient.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId:[0-9]+}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Услуги и слоты ---
	api.HandleFunc("/services/{serviceId:[0-9]+}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/deposits/quote", quoteDeposit.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <jwt>)
	// ============================================================

	me := api.PathPrefix("/masters/me").Subrouter()
	me.Use(middleware.Auth(tokens))

	me.HandleFunc("", getMaster.HandleMe).Methods(http.MethodGet)
	me.HandleFunc("", updateMasterProfile.Handle).Methods(http.MethodPatch)
	me.HandleFunc("/settings", getMasterSettings.Handle).Methods(http.MethodGet)
	me.HandleFunc("/settings", updateMasterSettings.Handle).Methods(http.MethodPut)
	me.HandleFunc("/services", listMasterServices.HandleMe).Methods(http.MethodGet)
	me.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	me.HandleFunc("/services/{serviceId:[0-9]+}", updateService.Handle).Methods(http.MethodPatch)
	me.HandleFunc("/bookings", getMasterBookings.Handle).Methods(http.MethodGet)
	me.HandleFunc("/clients", getMasterClients.Handle).Methods(http.MethodGet)
	me.HandleFunc("/wallet", getWallet.Handle).Methods(http.MethodGet)
	me.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)

	// --- Публичный профиль мастера ---
	api.HandleFunc("/masters/{masterId:[0-9]+}", getMaster.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId:[0-9]+}/services", listMasterServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId:[0-9]+}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	bookings := api.PathPrefix("/bookings/{bookingId:[0-9]+}").Subrouter()

	protected := bookings.NewRoute().Subrouter()
	protected.Use(middleware.Auth(tokens))
	protected.HandleFunc("", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/complete", completeBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/no-show", markNoShow.Handle).Methods(http.MethodPut)

	// Отмена: мастер по токену или клиент по clientId
	optional := bookings.NewRoute().Subrouter()
	optional.Use(middleware.OptionalAuth(tokens))
	optional.HandleFunc("/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Фоновые задачи
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs, err = scheduler.New(
			runPayoutsUseCase,
			cfg.Scheduler.PayoutSchedule,
			time.Duration(cfg.Scheduler.PayoutTimeout)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to init scheduler: %v", err)
		}
		jobs.Start()
	}

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

	if jobs != nil {
		jobs.Stop()
	}

	// Дожидаемся уведомлений, отправленных в фоне
	notifier.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

func waitForDB(db *sql.DB, timeout time.Duration, log *logger.Logger) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = timeout

	return backoff.RetryNotify(db.Ping, policy, func(err error, next time.Duration) {
		log.Warn("Database is not ready, retrying in %s: %v", next.Round(time.Millisecond), err)
	})
}
