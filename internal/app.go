package internal

import (
	google_adapter "addisnest-service/internal/adapters/google"
	token_adapter "addisnest-service/internal/adapters/jwt"
	logger_adapter "addisnest-service/internal/adapters/logger"
	"addisnest-service/internal/adapters/memory"
	mongo_adapter "addisnest-service/internal/adapters/mongo"
	postgres_adapter "addisnest-service/internal/adapters/postgres"
	rabbitmq_adapter "addisnest-service/internal/adapters/rabbitmq"
	redis_adapter "addisnest-service/internal/adapters/redis"
	"addisnest-service/internal/adapters/rest"
	s3_adapter "addisnest-service/internal/adapters/s3"
	"addisnest-service/internal/adapters/scheduler"
	sendgrid_adapter "addisnest-service/internal/adapters/sendgrid"
	twilio_adapter "addisnest-service/internal/adapters/twilio"
	"addisnest-service/internal/configs"
	"addisnest-service/internal/constants"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/usecase"
	fluentlogger "addisnest-service/pkg/fluent_logger"
	"addisnest-service/pkg/postgres"
	"addisnest-service/pkg/rabbitmq/rabbitmq_common"
	"addisnest-service/pkg/rabbitmq/rabbitmq_producer"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	shutdownTimeout = 15 * time.Second
	jobTimeout      = time.Minute
)

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	mongoClient *mongo.Client
	redisClient *redis.Client

	connManager             *rabbitmq_common.ConnectionManager
	listingEventsProducer   *rabbitmq_producer.Publisher
	pendingListingsListener port.EventListenerPort

	scheduler *scheduler.Scheduler

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// при ошибке ниже закрываем все, что успели открыть
	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}
	fail := func(msg string, err error) (*App, error) {
		appLogger.Error(msg, err, nil)
		app.shutdown()
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	ctx := context.Background()

	// --- 3. ХРАНИЛИЩА ---
	app.dbPool, err = postgres.NewClient(ctx, postgres.Config{
		DatabaseURL:    appConfig.Database.URL,
		MaxConns:       int32(appConfig.Database.MaxConns),
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		return fail("Failed to connect to PostgreSQL", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	propertyStore, err := app.newPropertyStore(ctx)
	if err != nil {
		return fail("Failed to create property store", err)
	}
	appLogger.Info("Property store initialized", port.Fields{"driver": appConfig.PropertyStore.Driver})

	userRepo, err := postgres_adapter.NewUserRepository(app.dbPool)
	if err != nil {
		return fail("Failed to create user repository", err)
	}
	otpRepo, err := postgres_adapter.NewOTPRepository(app.dbPool)
	if err != nil {
		return fail("Failed to create OTP repository", err)
	}
	messageRepo, err := postgres_adapter.NewMessageRepository(app.dbPool)
	if err != nil {
		return fail("Failed to create message repository", err)
	}
	partnershipRepo, err := postgres_adapter.NewPartnershipRepository(app.dbPool)
	if err != nil {
		return fail("Failed to create partnership repository", err)
	}

	// --- 4. НЕОБЯЗАТЕЛЬНЫЕ ИНТЕГРАЦИИ (nil - функция выключена) ---
	var listingCache port.ListingCachePort
	if appConfig.Redis.Enabled {
		app.redisClient, err = redis_adapter.NewClient(ctx, appConfig.Redis.Addr, appConfig.Redis.Password, appConfig.Redis.DB)
		if err != nil {
			return fail("Failed to connect to Redis", err)
		}
		cache, err := redis_adapter.NewListingCache(app.redisClient, appConfig.Redis.TTL)
		if err != nil {
			return fail("Failed to create listing cache", err)
		}
		listingCache = cache
		appLogger.Info("Redis listing cache initialized", nil)
	}

	var propertyEvents port.PropertyEventsPort
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		app.connManager, err = rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
		if err != nil {
			return fail("Failed to create connection manager", err)
		}

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		app.listingEventsProducer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.ExchangeListings,
			ExchangeType:             constants.ExchangeListingsType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,

			Logger: rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		}, app.connManager)
		if err != nil {
			return fail("Failed to create event producer", err)
		}

		publisher, err := rabbitmq_adapter.NewPropertyEventsPublisher(app.listingEventsProducer, constants.RoutingKeyPropertyCreated)
		if err != nil {
			return fail("Failed to create property events publisher", err)
		}
		propertyEvents = publisher
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)
	}

	var emailSender port.EmailSenderPort
	if appConfig.SendGrid.APIKey != "" {
		sender, err := sendgrid_adapter.NewEmailSender(appConfig.SendGrid.APIKey, appConfig.SendGrid.FromEmail, appConfig.SendGrid.FromName, appConfig.SendGrid.Sandbox)
		if err != nil {
			return fail("Failed to create SendGrid sender", err)
		}
		emailSender = sender
	}

	var smsSender port.SMSSenderPort
	if appConfig.Twilio.AccountSID != "" {
		sender, err := twilio_adapter.NewSMSSender(appConfig.Twilio.AccountSID, appConfig.Twilio.AuthToken, appConfig.Twilio.FromPhone)
		if err != nil {
			return fail("Failed to create Twilio sender", err)
		}
		smsSender = sender
	}

	var imageStorage port.ImageStoragePort
	if appConfig.S3.Enabled {
		storage, err := s3_adapter.NewImageStorage(ctx, appConfig.S3.Bucket, appConfig.S3.Region, appConfig.S3.PublicBaseURL)
		if err != nil {
			return fail("Failed to create S3 image storage", err)
		}
		imageStorage = storage
	}

	var identityVerifier port.IdentityVerifierPort
	if appConfig.Auth.GoogleClientID != "" {
		verifier, err := google_adapter.NewIdentityVerifier(appConfig.Auth.GoogleClientID)
		if err != nil {
			return fail("Failed to create Google identity verifier", err)
		}
		identityVerifier = verifier
	}

	appLogger.Info("Optional integrations configured", port.Fields{
		"redis":    listingCache != nil,
		"rabbitmq": propertyEvents != nil,
		"sendgrid": emailSender != nil,
		"twilio":   smsSender != nil,
		"s3":       imageStorage != nil,
		"google":   identityVerifier != nil,
	})

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		return fail("Failed to create token service", err)
	}

	// --- 5. USE CASES ---
	ttl := appConfig.Auth.AccessTokenTTL

	createPropertyUC := usecase.NewCreatePropertyUseCase(propertyStore, listingCache, propertyEvents, appConfig.PropertyStore.DuplicateWindow)
	listPropertiesUC := usecase.NewListPropertiesUseCase(propertyStore, listingCache)
	listMyPropertiesUC := usecase.NewListMyPropertiesUseCase(propertyStore)
	getPropertyUC := usecase.NewGetPropertyUseCase(propertyStore)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(propertyStore, listingCache)
	updateStatusUC := usecase.NewUpdatePropertyStatusUseCase(propertyStore, listingCache)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(propertyStore, listingCache)
	uploadImagesUC := usecase.NewUploadImagesUseCase(imageStorage)

	registerUC := usecase.NewRegisterUserUseCase(userRepo, tokenService, ttl)
	loginUC := usecase.NewLoginUserUseCase(userRepo, tokenService, ttl)
	requestOTPUC := usecase.NewRequestOTPUseCase(otpRepo, emailSender, smsSender, usecase.OTPSettings{
		Length: appConfig.Auth.OTPLength,
		TTL:    appConfig.Auth.OTPTTL,
	})
	verifyOTPUC := usecase.NewVerifyOTPUseCase(otpRepo, userRepo, tokenService, ttl)
	googleLoginUC := usecase.NewGoogleLoginUseCase(identityVerifier, userRepo, tokenService, ttl)
	getProfileUC := usecase.NewGetProfileUseCase(userRepo)
	validateTokenUC := usecase.NewValidateTokenUseCase(tokenService)
	cleanupOTPUC := usecase.NewCleanupOTPUseCase(otpRepo)

	sendMessageUC := usecase.NewSendMessageUseCase(messageRepo, userRepo, propertyStore)
	listConversationsUC := usecase.NewListConversationsUseCase(messageRepo)
	getThreadUC := usecase.NewGetThreadUseCase(messageRepo)
	markThreadReadUC := usecase.NewMarkThreadReadUseCase(messageRepo)

	submitPartnershipUC := usecase.NewSubmitPartnershipUseCase(partnershipRepo, emailSender, appConfig.SendGrid.TeamEmail)
	listPartnershipsUC := usecase.NewListPartnershipsUseCase(partnershipRepo)
	updatePartnershipUC := usecase.NewUpdatePartnershipStatusUseCase(partnershipRepo)
	dashboardUC := usecase.NewDashboardStatsUseCase(propertyStore, userRepo, partnershipRepo)
	listUsersUC := usecase.NewListUsersUseCase(userRepo)

	// --- 6. ВХОДЯЩИЕ АДАПТЕРЫ ---
	if appConfig.RabbitMQ.Enabled {
		notifyUC := usecase.NewNotifyPendingListingUseCase(emailSender, appConfig.SendGrid.TeamEmail)
		consumerCfg := rabbitmq_adapter.PendingListingConsumerConfig(appConfig.RabbitMQ.URL, "pending-listing-notifier")
		listener, err := rabbitmq_adapter.NewPendingListingConsumerAdapter(consumerCfg, notifyUC, baseLogger, app.connManager)
		if err != nil {
			return fail("Failed to create pending listings listener", err)
		}
		app.pendingListingsListener = listener
		appLogger.Info("Pending Listings Listener initialized.", nil)
	}

	app.scheduler = scheduler.NewScheduler(baseLogger, jobTimeout)
	err = app.scheduler.AddJob("otp_cleanup", appConfig.Auth.OTPCleanupSchedule, func(ctx context.Context) error {
		_, err := cleanupOTPUC.Execute(ctx)
		return err
	})
	if err != nil {
		return fail("Failed to schedule OTP cleanup", err)
	}

	handlers := rest.Handlers{
		Properties: rest.NewPropertyHandlers(createPropertyUC, listPropertiesUC, listMyPropertiesUC,
			getPropertyUC, updatePropertyUC, updateStatusUC, deletePropertyUC),
		Uploads:      rest.NewUploadHandlers(uploadImagesUC),
		Auth:         rest.NewAuthHandlers(registerUC, loginUC, requestOTPUC, verifyOTPUC, googleLoginUC, getProfileUC),
		Messages:     rest.NewMessageHandlers(sendMessageUC, listConversationsUC, getThreadUC, markThreadReadUC),
		Partnerships: rest.NewPartnershipHandlers(submitPartnershipUC, listPartnershipsUC, updatePartnershipUC),
		Admin:        rest.NewAdminHandlers(dashboardUC, listUsersUC),
	}
	app.apiServer = rest.NewServer(appConfig.Rest, handlers, rest.NewAuthMiddleware(validateTokenUC), baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

// newPropertyStore выбирает хранилище объявлений по PROPERTY_STORE
func (a *App) newPropertyStore(ctx context.Context) (port.PropertyStoragePort, error) {
	cfg := a.config.PropertyStore
	switch cfg.Driver {
	case "memory":
		a.logger.Warn("Using in-memory property store, data will not survive a restart", nil)
		return memory.NewPropertyStore(), nil
	case "mongo":
		client, err := mongo_adapter.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.mongoClient = client
		store, err := mongo_adapter.NewMongoPropertyStore(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		return store, nil
	default:
		return postgres_adapter.NewPostgresPropertyStorage(a.dbPool)
	}
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Единый контекст приложения для graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)
		cancelApp()
		a.shutdown()
		wg.Wait()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	componentErrors := make(chan error, 2)

	if a.pendingListingsListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener": "Pending Listings Listener"})
			listenerLogger.Info("Starting listener...", nil)
			if err := a.pendingListingsListener.Start(appCtx); err != nil && appCtx.Err() == nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				componentErrors <- err
				return
			}
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}()
	}

	a.scheduler.Start()

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			componentErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-componentErrors:
		a.logger.Error("Component failed, shutting down", err, nil)
		return err
	}

	return nil
}

// shutdown останавливает компоненты в обратном порядке запуска. Fluent закрывается отдельно, последним.
func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}

	if a.pendingListingsListener != nil {
		if err := a.pendingListingsListener.Close(); err != nil {
			a.logger.Error("Error closing pending listings listener", err, nil)
		}
	}

	if a.listingEventsProducer != nil {
		if err := a.listingEventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}

	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}

	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			a.logger.Error("Error stopping scheduler", err, nil)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.logger.Error("Error disconnecting from MongoDB", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
