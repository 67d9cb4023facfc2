package main

import (
	"rezkit/internal/availability"
	checkouthandler "rezkit/internal/checkout/handler"
	checkoutservice "rezkit/internal/checkout/service"
	itemhandler "rezkit/internal/items/handler"
	itemrepository "rezkit/internal/items/repository"
	itemservice "rezkit/internal/items/service"
	itemvalidator "rezkit/internal/items/validator"
	recordhandler "rezkit/internal/records/handler"
	recordrepository "rezkit/internal/records/repository"
	recordservice "rezkit/internal/records/service"
	recordvalidator "rezkit/internal/records/validator"
	sessionhandler "rezkit/internal/sessions/handler"
	sessionrepository "rezkit/internal/sessions/repository"
	sessionservice "rezkit/internal/sessions/service"
	sessionvalidator "rezkit/internal/sessions/validator"
	"rezkit/pkg/app"
	"rezkit/pkg/client"
	"rezkit/pkg/config"
	"rezkit/pkg/kafka"
	kafka_config "rezkit/pkg/kafka/config"
	kafka_middleware "rezkit/pkg/kafka/middleware"
	"rezkit/pkg/logger"
)

const ServiceName = "engine"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting booking engine")

	serverApp := app.NewApplication()

	itemService := initItemService(cfg)
	recordService := initRecordService(cfg)

	sessionRepo := sessionrepository.NewMemorySessionRepository(cfg)
	serverApp.AddWorker(sessionRepo)

	paymentClient := client.NewPaymentClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey)

	bootstrap := checkoutservice.NewBootstrap(paymentClient, cfg.PaymentBootstrapMaxWait, cfg.Log)
	bootstrap.Start()

	checkoutService := checkoutservice.NewCheckoutService(
		sessionRepo,
		paymentClient,
		bootstrap,
		initRecordSink(cfg, recordService),
		initEventPublisher(cfg, serverApp),
		cfg,
	)

	sessionService := initSessionService(cfg, sessionRepo, itemService, paymentClient)

	serverApp.SetApp(cfg,
		checkouthandler.NewWebhookHandler(checkoutService, cfg.Log),
		sessionhandler.NewSessionHandler(sessionService, cfg.Log),
		checkouthandler.NewPaymentHandler(checkoutService, cfg.Log),
		itemhandler.NewItemHandler(itemService, cfg.Log),
		recordhandler.NewRecordHandler(recordService, cfg.Log),
	)
	serverApp.Run()
}

func initItemService(cfg *config.Config) itemservice.ItemService {
	itemValidator := itemvalidator.NewItemValidator(cfg.Log)
	itemRepo := itemrepository.NewMongoItemRepository(cfg)
	itemService := itemservice.NewItemService(
		itemRepo,
		itemValidator,
		cfg,
	)

	cfg.Log.Info("Item service initialized", "database", cfg.MongoDatabaseName)
	return itemService
}

func initRecordService(cfg *config.Config) recordservice.RecordService {
	recordValidator := recordvalidator.NewRecordValidator(cfg.Log)
	recordRepo := recordrepository.NewMongoRecordRepository(cfg)
	recordService := recordservice.NewRecordService(recordRepo, recordValidator, cfg)

	cfg.Log.Info("Record service initialized", "database", cfg.MongoDatabaseName)
	return recordService
}

func initSessionService(
	cfg *config.Config,
	repo sessionrepository.SessionRepository,
	items sessionservice.ItemSource,
	payments sessionservice.IntentDisposer,
) sessionservice.SessionService {
	feedClient := client.NewFeedClient(cfg.AvailabilityFetchTimeout)
	fetcher := availability.NewFetcher(feedClient, cfg.AvailabilityFetchTimeout, cfg.Log)
	sessionValidator := sessionvalidator.NewSessionValidator(cfg.Log)
	sessionService := sessionservice.NewSessionService(
		repo,
		items,
		fetcher,
		sessionValidator,
		payments,
		cfg,
	)

	cfg.Log.Info("Session service initialized", "ttl", cfg.SessionTTL)
	return sessionService
}

// initRecordSink decides where finished bookings land. In http mode the
// engine forwards them to a downstream records API; otherwise it stores
// them in its own Mongo collection through the records service.
func initRecordSink(cfg *config.Config, records recordservice.RecordService) checkoutservice.RecordSink {
	if cfg.RecordSinkMode == config.RecordSinkHTTP {
		cfg.Log.Info("Forwarding booking records to remote sink", "url", cfg.RecordSinkURL)
		return checkoutservice.NewRemoteSink(client.NewRecordSinkClient(cfg.RecordSinkURL))
	}

	cfg.Log.Info("Storing booking records locally")
	return checkoutservice.NewLocalSink(records)
}

func initEventPublisher(cfg *config.Config, serverApp *app.Application) checkoutservice.EventPublisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return checkoutservice.NoopEventPublisher{}
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingEventsTopic, kafkaCfg.BookingEventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	serverApp.AddWorker(&producerWorker{producer: producer, log: cfg.Log})
	cfg.Log.Info("Booking event publisher initialized", "topic", kafkaCfg.BookingEventsTopic)
	return checkoutservice.NewKafkaEventPublisher(producer, cfg.Log)
}

// producerWorker adapts the Kafka producer to the application's
// shutdown hook.
type producerWorker struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func (w *producerWorker) Stop() {
	if err := w.producer.Close(); err != nil {
		w.log.Error("Failed to close Kafka producer", "error", err)
	}
}
