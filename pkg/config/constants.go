package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "PARTSLINK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv   = "PARTSLINK_APP_ENV"
	EnvPort     = "PARTSLINK_APP_PORT"
	EnvDBDSN    = "PARTSLINK_DB_DSN"
	EnvDBHost   = "PARTSLINK_DB_HOST"
	EnvDBUser   = "PARTSLINK_DB_USER"
	EnvDBName   = "PARTSLINK_DB_NAME"
	EnvRedisURL = "PARTSLINK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
