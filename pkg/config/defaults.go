package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "rezkit"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultAvailabilityFetchTimeout = 10 * time.Second

	DefaultPaymentBootstrapMaxWait = 30 * time.Second

	DefaultRecordSinkMode = RecordSinkMongo

	DefaultSessionTTL           = 2 * time.Hour
	DefaultSessionSweepInterval = 5 * time.Minute

	// Every widget interaction is one request, so the window has to
	// accommodate a full date-picking session.
	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultDefaultMaxNights         = 30
	DefaultDefaultMaxUnits          = 1
	DefaultDefaultBaseGuestsPerUnit = 1
	DefaultDefaultCurrency          = "EUR"
)
