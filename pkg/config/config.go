package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	Storage    StorageConfig
	DB         DBConfig
	Redis      RedisConfig
	Simulation SimulationConfig
	Orders     OrdersConfig
	Password   PasswordConfig
	Tracing    TracingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PAOQUENTINHO_APP_ENV" required:"true"`
	Port         string   `envconfig:"PAOQUENTINHO_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"PAOQUENTINHO_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PAOQUENTINHO_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PAOQUENTINHO_CORS_ORIGINS" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the key-value backend that holds the persisted
// user, cart and order records.
type StorageConfig struct {
	Backend     string `envconfig:"PAOQUENTINHO_STORAGE_BACKEND" default:"memory"`
	AutoMigrate bool   `envconfig:"PAOQUENTINHO_AUTO_MIGRATE" default:"false"`
}

func (s StorageConfig) NormalizedBackend() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

type DBConfig struct {
	DSN             string        `envconfig:"PAOQUENTINHO_DB_DSN"`
	MaxOpenConns    int           `envconfig:"PAOQUENTINHO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PAOQUENTINHO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PAOQUENTINHO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAOQUENTINHO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PAOQUENTINHO_REDIS_URL"`
	Address      string        `envconfig:"PAOQUENTINHO_REDIS_ADDR"`
	Password     string        `envconfig:"PAOQUENTINHO_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAOQUENTINHO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAOQUENTINHO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAOQUENTINHO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAOQUENTINHO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAOQUENTINHO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAOQUENTINHO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SimulationConfig holds the artificial latencies the storefront applies
// to account and payment operations.
type SimulationConfig struct {
	LoginDelay    time.Duration `envconfig:"PAOQUENTINHO_SIM_LOGIN_DELAY" default:"1s"`
	RegisterDelay time.Duration `envconfig:"PAOQUENTINHO_SIM_REGISTER_DELAY" default:"1s"`
	GoogleDelay   time.Duration `envconfig:"PAOQUENTINHO_SIM_GOOGLE_DELAY" default:"1500ms"`
	PaymentDelay  time.Duration `envconfig:"PAOQUENTINHO_SIM_PAYMENT_DELAY" default:"2s"`
}

type OrdersConfig struct {
	PreparingDelay   time.Duration `envconfig:"PAOQUENTINHO_ORDERS_PREPARING_DELAY" default:"2s"`
	ReadyDelay       time.Duration `envconfig:"PAOQUENTINHO_ORDERS_READY_DELAY" default:"5m"`
	EstimatedMinutes int           `envconfig:"PAOQUENTINHO_ORDERS_ESTIMATED_MINUTES" default:"5"`
	ResumePending    bool          `envconfig:"PAOQUENTINHO_ORDERS_RESUME_PENDING" default:"false"`
}

type PasswordConfig struct {
	Mode             string `envconfig:"PAOQUENTINHO_PASSWORD_MODE" default:"plain"`
	ArgonMemoryKB    int    `envconfig:"PAOQUENTINHO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"PAOQUENTINHO_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"PAOQUENTINHO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"PAOQUENTINHO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"PAOQUENTINHO_ARGON_KEY_LEN" default:"32"`
}

// TracingConfig selects where HTTP spans go. "none" keeps the global no-op
// provider.
type TracingConfig struct {
	Exporter     string  `envconfig:"PAOQUENTINHO_TRACING_EXPORTER" default:"none"`
	OTLPEndpoint string  `envconfig:"PAOQUENTINHO_OTLP_ENDPOINT" default:"localhost:4317"`
	SampleRatio  float64 `envconfig:"PAOQUENTINHO_TRACING_SAMPLE_RATIO" default:"1"`
}

func (t TracingConfig) NormalizedExporter() string {
	return strings.ToLower(strings.TrimSpace(t.Exporter))
}

func (p PasswordConfig) Hashed() bool {
	return strings.EqualFold(strings.TrimSpace(p.Mode), PasswordModeArgon2id)
}

func (c *Config) validate() error {
	switch c.Storage.NormalizedBackend() {
	case StorageBackendMemory:
	case StorageBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
		}
	case StorageBackendSQLite, StorageBackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the %s backend", EnvDBDSN, c.Storage.NormalizedBackend())
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, c.Storage.Backend)
	}

	switch strings.ToLower(strings.TrimSpace(c.Password.Mode)) {
	case PasswordModePlain, PasswordModeArgon2id:
	default:
		return fmt.Errorf("unsupported %s %q", EnvPasswordMode, c.Password.Mode)
	}

	switch c.Tracing.NormalizedExporter() {
	case TracingExporterNone, TracingExporterStdout, TracingExporterOTLP, "":
	default:
		return fmt.Errorf("unsupported %s %q", EnvTracingExporter, c.Tracing.Exporter)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("%s must be between 0 and 1", EnvTracingSampleRatio)
	}

	if c.Orders.PreparingDelay < 0 || c.Orders.ReadyDelay < 0 {
		return fmt.Errorf("order transition delays must not be negative")
	}
	if c.Orders.ReadyDelay < c.Orders.PreparingDelay {
		return fmt.Errorf("%s must not be shorter than %s", EnvOrdersReadyDelay, EnvOrdersPreparingDelay)
	}
	return nil
}
