package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvPaymentBaseURL          = "PAYMENT_BASE_URL"
	EnvPaymentAPIKey           = "PAYMENT_API_KEY"
	EnvPaymentWebhookSecret    = "PAYMENT_WEBHOOK_SECRET"
	EnvPaymentBootstrapMaxWait = "PAYMENT_BOOTSTRAP_MAX_WAIT"

	EnvAvailabilityFetchTimeout = "AVAILABILITY_FETCH_TIMEOUT"

	EnvRecordSinkMode = "RECORD_SINK_MODE"
	EnvRecordSinkURL  = "RECORD_SINK_URL"

	EnvSessionTTL           = "SESSION_TTL"
	EnvSessionSweepInterval = "SESSION_SWEEP_INTERVAL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultMaxNights         = "DEFAULT_MAX_NIGHTS"
	EnvDefaultMaxUnits          = "DEFAULT_MAX_UNITS"
	EnvDefaultBaseGuestsPerUnit = "DEFAULT_BASE_GUESTS_PER_UNIT"
	EnvDefaultCurrency          = "DEFAULT_CURRENCY"
)
