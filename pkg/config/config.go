package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is passed to envconfig when processing the environment.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EASTLIFY_APP_ENV" required:"true"`
	Port         string `envconfig:"EASTLIFY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"EASTLIFY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EASTLIFY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"EASTLIFY_DB_DSN"`

	Host     string `envconfig:"EASTLIFY_DB_HOST"`
	Port     int    `envconfig:"EASTLIFY_DB_PORT" default:"5432"`
	User     string `envconfig:"EASTLIFY_DB_USER"`
	Password string `envconfig:"EASTLIFY_DB_PASSWORD"`
	Name     string `envconfig:"EASTLIFY_DB_NAME"`
	SSLMode  string `envconfig:"EASTLIFY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EASTLIFY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EASTLIFY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EASTLIFY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EASTLIFY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either EASTLIFY_DB_DSN or EASTLIFY_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"EASTLIFY_REDIS_URL"`
	Address      string        `envconfig:"EASTLIFY_REDIS_ADDR"`
	Password     string        `envconfig:"EASTLIFY_REDIS_PASSWORD"`
	DB           int           `envconfig:"EASTLIFY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EASTLIFY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EASTLIFY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EASTLIFY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EASTLIFY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EASTLIFY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"EASTLIFY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"EASTLIFY_JWT_ISSUER" default:"eastlify"`
	ExpirationMinutes int    `envconfig:"EASTLIFY_JWT_EXPIRATION_MINUTES" default:"43200"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EASTLIFY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EASTLIFY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EASTLIFY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EASTLIFY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EASTLIFY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"EASTLIFY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"EASTLIFY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"EASTLIFY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"EASTLIFY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"EASTLIFY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"EASTLIFY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EASTLIFY_FEATURE_AUTO_MIGRATE" default:"true"`
}
