package config

// EnvPrefix is handed to envconfig; every field below also carries its full
// variable name so lookups never depend on the nested struct path.
const EnvPrefix = "LOCALARTHUB"

const (
	EnvAppEnv       = "LOCALARTHUB_APP_ENV"
	EnvPort         = "LOCALARTHUB_APP_PORT"
	EnvLogLevel     = "LOCALARTHUB_LOG_LEVEL"
	EnvLogWarnStack = "LOCALARTHUB_LOG_WARN_STACK"

	EnvStorageDriver = "LOCALARTHUB_STORAGE_DRIVER"
	EnvStorageTTL    = "LOCALARTHUB_STORAGE_TTL"

	EnvDBDSN      = "LOCALARTHUB_DB_DSN"
	EnvDBDriver   = "LOCALARTHUB_DB_DRIVER"
	EnvDBHost     = "LOCALARTHUB_DB_HOST"
	EnvDBPort     = "LOCALARTHUB_DB_PORT"
	EnvDBUser     = "LOCALARTHUB_DB_USER"
	EnvDBPassword = "LOCALARTHUB_DB_PASSWORD"
	EnvDBName     = "LOCALARTHUB_DB_NAME"

	EnvRedisURL  = "LOCALARTHUB_REDIS_URL"
	EnvRedisAddr = "LOCALARTHUB_REDIS_ADDR"

	EnvSessionKey   = "LOCALARTHUB_SESSION_KEY"
	EnvCookieSecure = "LOCALARTHUB_COOKIE_SECURE"

	EnvCatalogPage = "LOCALARTHUB_CATALOG_PAGE"

	EnvCartClampDetailQuantity = "LOCALARTHUB_CART_CLAMP_DETAIL_QUANTITY"
	EnvCartHomeURL             = "LOCALARTHUB_CART_HOME_URL"
	EnvCartRedirectDelay       = "LOCALARTHUB_CART_REDIRECT_DELAY"

	EnvFormRateLimitWindow = "LOCALARTHUB_FORM_RATE_LIMIT_WINDOW"
	EnvFormRateLimit       = "LOCALARTHUB_FORM_RATE_LIMIT"

	EnvAutoMigrate = "LOCALARTHUB_AUTO_MIGRATE"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"
	StorageDriverSQL    = "sql"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
