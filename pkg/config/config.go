package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"rezkit/pkg/client"
	"rezkit/pkg/logger"
)

const (
	RecordSinkMongo = "mongo"
	RecordSinkHTTP  = "http"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	PaymentBaseURL          string
	PaymentAPIKey           string
	PaymentWebhookSecret    string
	PaymentBootstrapMaxWait time.Duration

	AvailabilityFetchTimeout time.Duration

	RecordSinkMode string
	RecordSinkURL  string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultMaxNights         int
	DefaultMaxUnits          int
	DefaultBaseGuestsPerUnit int
	DefaultCurrency          string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		PaymentBaseURL:          getEnvStr(EnvPaymentBaseURL, ""),
		PaymentAPIKey:           getEnvStr(EnvPaymentAPIKey, ""),
		PaymentWebhookSecret:    getEnvStr(EnvPaymentWebhookSecret, ""),
		PaymentBootstrapMaxWait: getEnvDuration(EnvPaymentBootstrapMaxWait, DefaultPaymentBootstrapMaxWait),

		AvailabilityFetchTimeout: getEnvDuration(EnvAvailabilityFetchTimeout, DefaultAvailabilityFetchTimeout),

		RecordSinkMode: getEnvStr(EnvRecordSinkMode, DefaultRecordSinkMode),
		RecordSinkURL:  getEnvStr(EnvRecordSinkURL, ""),

		SessionTTL:           getEnvDuration(EnvSessionTTL, DefaultSessionTTL),
		SessionSweepInterval: getEnvDuration(EnvSessionSweepInterval, DefaultSessionSweepInterval),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultMaxNights:         getEnvNum(EnvDefaultMaxNights, DefaultDefaultMaxNights),
		DefaultMaxUnits:          getEnvNum(EnvDefaultMaxUnits, DefaultDefaultMaxUnits),
		DefaultBaseGuestsPerUnit: getEnvNum(EnvDefaultBaseGuestsPerUnit, DefaultDefaultBaseGuestsPerUnit),
		DefaultCurrency:          getEnvStr(EnvDefaultCurrency, DefaultDefaultCurrency),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.AvailabilityFetchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("AvailabilityFetchTimeout must be positive, got: %s", cfg.AvailabilityFetchTimeout))
	}
	if cfg.PaymentBootstrapMaxWait <= 0 {
		errors = append(errors, fmt.Sprintf("PaymentBootstrapMaxWait must be positive, got: %s", cfg.PaymentBootstrapMaxWait))
	}
	if cfg.SessionTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SessionTTL must be positive, got: %s", cfg.SessionTTL))
	}
	if cfg.SessionSweepInterval <= 0 {
		errors = append(errors, fmt.Sprintf("SessionSweepInterval must be positive, got: %s", cfg.SessionSweepInterval))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.RecordSinkMode != RecordSinkMongo && cfg.RecordSinkMode != RecordSinkHTTP {
		errors = append(errors, fmt.Sprintf("RecordSinkMode must be '%s' or '%s', got: %s", RecordSinkMongo, RecordSinkHTTP, cfg.RecordSinkMode))
	}
	httpURLRegex := regexp.MustCompile(`^https?://`)
	if cfg.RecordSinkMode == RecordSinkHTTP && !httpURLRegex.MatchString(cfg.RecordSinkURL) {
		errors = append(errors, fmt.Sprintf("RecordSinkURL must be an http(s) URL when RecordSinkMode is '%s', got: %s", RecordSinkHTTP, cfg.RecordSinkURL))
	}

	if cfg.PaymentBaseURL != "" {
		if !httpURLRegex.MatchString(cfg.PaymentBaseURL) {
			errors = append(errors, fmt.Sprintf("PaymentBaseURL must be an http(s) URL, got: %s", cfg.PaymentBaseURL))
		}
		if cfg.PaymentWebhookSecret == "" {
			errors = append(errors, "PaymentWebhookSecret is required when PaymentBaseURL is set")
		}
	}

	if cfg.DefaultMaxNights < 1 {
		errors = append(errors, fmt.Sprintf("DefaultMaxNights must be at least 1, got: %d", cfg.DefaultMaxNights))
	}
	if cfg.DefaultMaxUnits < 1 {
		errors = append(errors, fmt.Sprintf("DefaultMaxUnits must be at least 1, got: %d", cfg.DefaultMaxUnits))
	}
	if cfg.DefaultBaseGuestsPerUnit < 1 {
		errors = append(errors, fmt.Sprintf("DefaultBaseGuestsPerUnit must be at least 1, got: %d", cfg.DefaultBaseGuestsPerUnit))
	}
	if !regexp.MustCompile(`^[A-Z]{3}$`).MatchString(cfg.DefaultCurrency) {
		errors = append(errors, fmt.Sprintf("DefaultCurrency must be a 3-letter ISO code, got: %s", cfg.DefaultCurrency))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"payment_base_url", cfg.PaymentBaseURL,
		"payment_api_key_set", cfg.PaymentAPIKey != "",
		"payment_webhook_secret_set", cfg.PaymentWebhookSecret != "",
		"payment_bootstrap_max_wait", cfg.PaymentBootstrapMaxWait,
		"availability_fetch_timeout", cfg.AvailabilityFetchTimeout,
		"record_sink_mode", cfg.RecordSinkMode,
		"record_sink_url", cfg.RecordSinkURL,
		"session_ttl", cfg.SessionTTL,
		"session_sweep_interval", cfg.SessionSweepInterval,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_max_nights", cfg.DefaultMaxNights,
		"default_max_units", cfg.DefaultMaxUnits,
		"default_base_guests_per_unit", cfg.DefaultBaseGuestsPerUnit,
		"default_currency", cfg.DefaultCurrency,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
