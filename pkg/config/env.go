package config

// EnvPrefix is handed to envconfig; every field carries its full variable name.
const EnvPrefix = "SOS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	DefaultSQLiteDSN = "file:sos-board.db?_foreign_keys=on"
)

const (
	EnvAppEnv        = "SOS_APP_ENV"
	EnvPort          = "SOS_APP_PORT"
	EnvSuperadminKey = "SOS_SUPERADMIN_KEY"
	EnvDBDSN         = "SOS_DB_DSN"
	EnvDBDriver      = "SOS_DB_DRIVER"
	EnvDBHost        = "SOS_DB_HOST"
	EnvDBUser        = "SOS_DB_USER"
	EnvDBName        = "SOS_DB_NAME"
	EnvRedisURL      = "SOS_REDIS_URL"
	EnvServerURL     = "SOS_SERVER_URL"
	EnvClientTimeout = "SOS_CLIENT_TIMEOUT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
