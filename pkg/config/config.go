package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Client       ClientConfig
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

// LoadClient reads only the settings sosctl needs, so the client runs
// without the server's required variables.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOS_APP_ENV" required:"true"`
	Port         string `envconfig:"SOS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOS_LOG_WARN_STACK" default:"false"`
	// SuperadminKey is the shared secret that unlocks the superadmin view.
	SuperadminKey string `envconfig:"SOS_SUPERADMIN_KEY" default:"mpsosadmin"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"SOS_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SOS_HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"SOS_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SOS_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string      `envconfig:"SOS_HTTP_ALLOWED_ORIGINS" default:"*"`
}

type DBConfig struct {
	DSN    string `envconfig:"SOS_DB_DSN"`
	Driver string `envconfig:"SOS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOS_DB_HOST"`
	LegacyPort     int    `envconfig:"SOS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOS_DB_USER"`
	LegacyPassword string `envconfig:"SOS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SOS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the board runs against the embedded SQLite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

// RedisConfig is optional; an empty URL and address disables rate limiting and idempotency replay.
type RedisConfig struct {
	URL          string        `envconfig:"SOS_REDIS_URL"`
	Address      string        `envconfig:"SOS_REDIS_ADDR"`
	Password     string        `envconfig:"SOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	RegisterWindow       time.Duration `envconfig:"SOS_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIPLimit      int           `envconfig:"SOS_RATE_LIMIT_REGISTER_IP_LIMIT" default:"10"`
	RegisterAccountLimit int           `envconfig:"SOS_RATE_LIMIT_REGISTER_ACCOUNT_LIMIT" default:"3"`
	IdempotencyTTL       time.Duration `envconfig:"SOS_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOS_AUTO_MIGRATE" default:"false"`
	Metrics     bool `envconfig:"SOS_METRICS_ENABLED" default:"true"`
}

// ClientConfig holds defaults for the sosctl client.
type ClientConfig struct {
	ServerURL     string        `envconfig:"SOS_SERVER_URL" default:"http://localhost:8080"`
	Timeout       time.Duration `envconfig:"SOS_CLIENT_TIMEOUT" default:"10s"`
	// As is the default identity, a vendor key or the superadmin secret.
	As            string        `envconfig:"SOS_CLIENT_AS"`
	SuperadminKey string        `envconfig:"SOS_SUPERADMIN_KEY" default:"mpsosadmin"`
	LogLevel      string        `envconfig:"SOS_CLIENT_LOG_LEVEL" default:"error"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
