package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix exists mostly for documentation.
const EnvPrefix = "CATALOG"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "CATALOG_APP_ENV"
	EnvPort       = "CATALOG_APP_PORT"
	EnvDBDSN      = "CATALOG_DB_DSN"
	EnvDBHost     = "CATALOG_DB_HOST"
	EnvDBUser     = "CATALOG_DB_USER"
	EnvDBName     = "CATALOG_DB_NAME"
	EnvJWTSecret  = "CATALOG_JWT_SECRET"
	EnvJWTIssuer  = "CATALOG_JWT_ISSUER"
	EnvJWTExpMins = "CATALOG_JWT_EXPIRATION_MINUTES"
	EnvRedisURL   = "CATALOG_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
