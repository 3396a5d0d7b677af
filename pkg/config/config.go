package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Storage       StorageConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	CORS          CORSConfig
	Catalog       CatalogConfig
	Cart          CartConfig
	FormRateLimit FormRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageDriverMemory
	case StorageDriverMemory:
	case StorageDriverRedis:
		if !c.Redis.Configured() {
			return fmt.Errorf("%s=redis requires %s or %s", EnvStorageDriver, EnvRedisURL, EnvRedisAddr)
		}
	case StorageDriverSQL:
		if err := c.DB.ensureDSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, c.Storage.Driver)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"LOCALARTHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"LOCALARTHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOCALARTHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOCALARTHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the backend that plays the role of the browser's local storage.
type StorageConfig struct {
	Driver string        `envconfig:"LOCALARTHUB_STORAGE_DRIVER" default:"memory"`
	TTL    time.Duration `envconfig:"LOCALARTHUB_STORAGE_TTL" default:"0"`
}

type DBConfig struct {
	DSN    string `envconfig:"LOCALARTHUB_DB_DSN"`
	Driver string `envconfig:"LOCALARTHUB_DB_DRIVER" default:"sqlite"`

	LegacyHost     string `envconfig:"LOCALARTHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"LOCALARTHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LOCALARTHUB_DB_USER"`
	LegacyPassword string `envconfig:"LOCALARTHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"LOCALARTHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"LOCALARTHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LOCALARTHUB_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LOCALARTHUB_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LOCALARTHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOCALARTHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsPostgres reports whether the SQL backend talks to Postgres rather than SQLite.
func (db DBConfig) IsPostgres() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverPostgres)
}

type RedisConfig struct {
	URL          string        `envconfig:"LOCALARTHUB_REDIS_URL"`
	Address      string        `envconfig:"LOCALARTHUB_REDIS_ADDR"`
	Password     string        `envconfig:"LOCALARTHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOCALARTHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOCALARTHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOCALARTHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOCALARTHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOCALARTHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LOCALARTHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether enough settings exist to dial Redis.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	Key          string        `envconfig:"LOCALARTHUB_SESSION_KEY" default:"localarthub-dev-session-key-change-me"`
	CookieName   string        `envconfig:"LOCALARTHUB_COOKIE_NAME" default:"lah-visitor"`
	CookieDomain string        `envconfig:"LOCALARTHUB_COOKIE_DOMAIN"`
	CookieSecure bool          `envconfig:"LOCALARTHUB_COOKIE_SECURE" default:"false"`
	MaxAge       time.Duration `envconfig:"LOCALARTHUB_COOKIE_MAX_AGE" default:"8760h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LOCALARTHUB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5500"`
}

type CatalogConfig struct {
	// Page is a path to the shop markup; empty uses the bundled page.
	Page string `envconfig:"LOCALARTHUB_CATALOG_PAGE"`
}

type CartConfig struct {
	ClampDetailQuantity bool          `envconfig:"LOCALARTHUB_CART_CLAMP_DETAIL_QUANTITY" default:"false"`
	HomeURL             string        `envconfig:"LOCALARTHUB_CART_HOME_URL" default:"index.html"`
	RedirectDelay       time.Duration `envconfig:"LOCALARTHUB_CART_REDIRECT_DELAY" default:"2s"`
}

type FormRateLimitConfig struct {
	Window time.Duration `envconfig:"LOCALARTHUB_FORM_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"LOCALARTHUB_FORM_RATE_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LOCALARTHUB_AUTO_MIGRATE" default:"true"`
}

// ResolveDSN fills DSN from the driver default or the discrete connection
// settings. The migrate tool needs it even when storage is not SQL.
func (db *DBConfig) ResolveDSN() error {
	return db.ensureDSN()
}

func (db *DBConfig) ensureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	if db.DSN != "" {
		return nil
	}

	if db.Driver == DBDriverSQLite {
		db.DSN = "file:localarthub.db?_busy_timeout=5000"
		return nil
	}
	if db.Driver != DBDriverPostgres {
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
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
