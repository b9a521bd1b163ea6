package config

// EnvPrefix namespaces every Intern Fund environment variable.
const EnvPrefix = "INTERNFUND"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "INTERNFUND_APP_ENV"
	EnvPort     = "INTERNFUND_APP_PORT"
	EnvLogLevel = "INTERNFUND_LOG_LEVEL"

	EnvDBDSN  = "INTERNFUND_DB_DSN"
	EnvDBHost = "INTERNFUND_DB_HOST"
	EnvDBUser = "INTERNFUND_DB_USER"
	EnvDBName = "INTERNFUND_DB_NAME"

	EnvRedisURL = "INTERNFUND_REDIS_URL"

	EnvJWTSecret  = "INTERNFUND_JWT_SECRET"
	EnvJWTIssuer  = "INTERNFUND_JWT_ISSUER"
	EnvJWTExpMins = "INTERNFUND_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID = "INTERNFUND_GCP_PROJECT_ID"
	EnvGCSBucket    = "INTERNFUND_GCS_BUCKET_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
