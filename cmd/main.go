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
	"github.com/stripe/stripe-go/v76"

	blockedHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/blocked"
	businessesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/businesses"
	createOrderHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_order"
	eventsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/events"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	offeringsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/offerings"
	ordersHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/orders"
	paymentWebhookHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/payment_webhook"
	requestPaymentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/request_payment"
	startPaymentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/start_payment"
	updateOrderStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_order_status"
	walletHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/wallet"
	withdrawHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/withdraw"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	blockedRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blocked"
	businessRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	orderRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/order"
	withdrawalRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/withdrawal"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/geocoding"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/stripegateway"
	"github.com/m04kA/SMC-ReservationService/internal/notify"
	availabilityService "github.com/m04kA/SMC-ReservationService/internal/service/availability"
	businessService "github.com/m04kA/SMC-ReservationService/internal/service/business"
	ordersService "github.com/m04kA/SMC-ReservationService/internal/service/orders"
	walletService "github.com/m04kA/SMC-ReservationService/internal/service/wallet"
	completePaymentUC "github.com/m04kA/SMC-ReservationService/internal/usecase/complete_payment"
	createOrderUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_order"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	requestPaymentUC "github.com/m04kA/SMC-ReservationService/internal/usecase/request_payment"
	startPaymentUC "github.com/m04kA/SMC-ReservationService/internal/usecase/start_payment"
	updateOrderStatusUC "github.com/m04kA/SMC-ReservationService/internal/usecase/update_order_status"
	withdrawUC "github.com/m04kA/SMC-ReservationService/internal/usecase/withdraw"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/mq"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")

	operators, err := cfg.Auth.Operators()
	if err != nil {
		log.Fatal("Invalid operator list: %v", err)
	}

	// Метрики (если включены). Доменные счётчики принимают nil *Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	businessRepository := businessRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	withdrawalRepository := withdrawalRepo.NewRepository(wrappedDB)
	blockedRepository := blockedRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции
	geocoder := geocoding.NewClient(
		cfg.Geocoding.URL,
		cfg.Geocoding.APIKey,
		time.Duration(cfg.Geocoding.Timeout)*time.Second,
		log,
	)
	paymentGateway := stripegateway.NewClient(
		cfg.Payments.SecretKey,
		cfg.Payments.WebhookSecret,
		stripe.NewBackends(&http.Client{Timeout: time.Duration(cfg.Payments.Timeout) * time.Second}),
	)
	log.Info("Integration clients initialized (geocoding=%s timeout=%ds, payments timeout=%ds)",
		cfg.Geocoding.URL, cfg.Geocoding.Timeout, cfg.Payments.Timeout)

	// Уведомления: websocket hub, брокер (если настроен) и лог
	hub := notify.NewHub(log)
	channels := []notify.Channel{hub, notify.NewLogChannel(log)}

	var publisher *mq.Publisher
	if cfg.Notifications.AMQPURL != "" {
		publisher, err = mq.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		channels = append(channels, notify.NewBrokerChannel(publisher))
		log.Info("Notifications are published to exchange=%s", cfg.Notifications.Exchange)
	}

	dispatcher := notify.NewDispatcher(notify.Config{
		Workers:      cfg.Notifications.Workers,
		QueueSize:    cfg.Notifications.QueueSize,
		Timeout:      time.Duration(cfg.Notifications.Timeout) * time.Second,
		OperatorRoom: cfg.Notifications.OperatorRoom,
	}, metricsCollector, log, channels...)

	// Сервисы
	availabilitySvc := availabilityService.NewService(orderRepository, blockedRepository)
	businessSvc := businessService.NewService(businessRepository, blockedRepository, geocoder, txMgr, log)
	ordersSvc := ordersService.NewService(orderRepository, businessRepository, customerRepository, log)
	walletSvc := walletService.NewService(
		businessRepository,
		orderRepository,
		withdrawalRepository,
		txMgr,
		cfg.Ledger.HoldPeriod(),
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(businessRepository, availabilitySvc, log)

	createOrderUseCase := createOrderUC.NewUseCase(
		businessRepository,
		orderRepository,
		customerRepository,
		availabilitySvc,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)

	updateOrderStatusUseCase := updateOrderStatusUC.NewUseCase(
		orderRepository,
		businessRepository,
		customerRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)

	requestPaymentUseCase := requestPaymentUC.NewUseCase(
		orderRepository,
		businessRepository,
		customerRepository,
		dispatcher,
		txMgr,
		log,
	)

	startPaymentUseCase := startPaymentUC.NewUseCase(orderRepository, paymentGateway, txMgr, log)

	completePaymentUseCase := completePaymentUC.NewUseCase(
		orderRepository,
		businessRepository,
		customerRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		cfg.Ledger.FeeRate(),
		log,
	)

	withdrawUseCase := withdrawUC.NewUseCase(
		businessRepository,
		orderRepository,
		withdrawalRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		cfg.Ledger.HoldPeriod(),
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(updateOrderStatusUseCase, log)
	requestPayment := requestPaymentHandler.NewHandler(requestPaymentUseCase, log)
	startPayment := startPaymentHandler.NewHandler(startPaymentUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentGateway, completePaymentUseCase, log)
	withdraw := withdrawHandler.NewHandler(withdrawUseCase, log)
	businesses := businessesHandler.NewHandler(businessSvc, log)
	offerings := offeringsHandler.NewHandler(businessSvc, log)
	blocked := blockedHandler.NewHandler(businessSvc, log)
	orders := ordersHandler.NewHandler(ordersSvc, log)
	wallet := walletHandler.NewHandler(walletSvc, log)
	events := eventsHandler.NewHandler(hub, cfg.Notifications.OperatorRoom, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бизнеса, бронирование, оплата)
	// ============================================================

	api.HandleFunc("/businesses/by-sign/{sign}", businesses.GetBySign).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/offerings/{offeringId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/orders", createOrder.Handle).Methods(http.MethodPost)
	api.HandleFunc("/orders/{orderId}", orders.Lite).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}/payment", startPayment.Handle).Methods(http.MethodPost)

	// Вебхук платёжного шлюза, подлинность проверяется подписью
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// OPERATOR ROUTES (X-Account-ID из списка операторов)
	// ============================================================

	operator := api.PathPrefix("/operator").Subrouter()
	operator.Use(middleware.Auth, middleware.Operator(operators))

	operator.HandleFunc("/withdrawals/{withdrawalId}/complete", wallet.Complete).Methods(http.MethodPost)
	operator.HandleFunc("/withdrawals/{withdrawalId}/fail", wallet.Fail).Methods(http.MethodPost)
	operator.HandleFunc("/events", events.Operator).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Account-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бизнесы ---
	protected.HandleFunc("/businesses", businesses.Create).Methods(http.MethodPost)
	protected.HandleFunc("/businesses", businesses.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}", businesses.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/schedule", businesses.SetSchedule).Methods(http.MethodPut)

	// --- Услуги ---
	protected.HandleFunc("/businesses/{businessId}/offerings", offerings.Add).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/offerings/{offeringId}", offerings.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/offerings/{offeringId}", offerings.Delete).Methods(http.MethodDelete)

	// --- Закрытые интервалы ---
	protected.HandleFunc("/businesses/{businessId}/blocked", blocked.Create).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/blocked", blocked.List).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/blocked/{blockedId}", blocked.Delete).Methods(http.MethodDelete)

	// --- Заказы ---
	protected.HandleFunc("/businesses/{businessId}/orders", orders.List).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/orders/{orderId}", orders.Get).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/orders/{orderId}/status",
		updateOrderStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/orders/{orderId}/payment-request",
		requestPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/customers", orders.Customers).Methods(http.MethodGet)

	// --- Кошелёк ---
	protected.HandleFunc("/businesses/{businessId}/wallet", wallet.Get).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/withdrawals", withdraw.Handle).Methods(http.MethodPost)

	// --- Уведомления в реальном времени ---
	protected.HandleFunc("/events", events.Owner).Methods(http.MethodGet)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
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

	// Сервер остановлен, новых событий не будет: дожидаемся отправки очереди
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("Notification queue was not drained: %v", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close message broker connection: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
