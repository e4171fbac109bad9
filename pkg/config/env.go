package config

const EnvPrefix = "PAOQUENTINHO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendMemory   = "memory"
	StorageBackendRedis    = "redis"
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
)

const (
	PasswordModePlain    = "plain"
	PasswordModeArgon2id = "argon2id"
)

const (
	TracingExporterNone   = "none"
	TracingExporterStdout = "stdout"
	TracingExporterOTLP   = "otlp"
)

const (
	EnvAppEnv               = "PAOQUENTINHO_APP_ENV"
	EnvPort                 = "PAOQUENTINHO_APP_PORT"
	EnvLogLevel             = "PAOQUENTINHO_LOG_LEVEL"
	EnvCORSOrigins          = "PAOQUENTINHO_CORS_ORIGINS"
	EnvStorageBackend       = "PAOQUENTINHO_STORAGE_BACKEND"
	EnvAutoMigrate          = "PAOQUENTINHO_AUTO_MIGRATE"
	EnvDBDSN                = "PAOQUENTINHO_DB_DSN"
	EnvRedisURL             = "PAOQUENTINHO_REDIS_URL"
	EnvRedisAddr            = "PAOQUENTINHO_REDIS_ADDR"
	EnvSimLoginDelay        = "PAOQUENTINHO_SIM_LOGIN_DELAY"
	EnvSimPaymentDelay      = "PAOQUENTINHO_SIM_PAYMENT_DELAY"
	EnvOrdersPreparingDelay = "PAOQUENTINHO_ORDERS_PREPARING_DELAY"
	EnvOrdersReadyDelay     = "PAOQUENTINHO_ORDERS_READY_DELAY"
	EnvOrdersResumePending  = "PAOQUENTINHO_ORDERS_RESUME_PENDING"
	EnvPasswordMode         = "PAOQUENTINHO_PASSWORD_MODE"
	EnvTracingExporter      = "PAOQUENTINHO_TRACING_EXPORTER"
	EnvTracingSampleRatio   = "PAOQUENTINHO_TRACING_SAMPLE_RATIO"
)
