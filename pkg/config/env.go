package config

const (
	EnvPrefix = "PARTCUSTODY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "PARTCUSTODY_APP_ENV"
	EnvPort         = "PARTCUSTODY_APP_PORT"
	EnvLogLevel     = "PARTCUSTODY_LOG_LEVEL"
	EnvLogWarnStack = "PARTCUSTODY_LOG_WARN_STACK"
	EnvReporter     = "PARTCUSTODY_APP_REPORTER"
	EnvCORSOrigins  = "PARTCUSTODY_CORS_ORIGINS"

	EnvStorageDriver    = "PARTCUSTODY_STORAGE_DRIVER"
	EnvStorageNamespace = "PARTCUSTODY_STORAGE_NAMESPACE"

	EnvDBDSN      = "PARTCUSTODY_DB_DSN"
	EnvDBDriver   = "PARTCUSTODY_DB_DRIVER"
	EnvDBHost     = "PARTCUSTODY_DB_HOST"
	EnvDBPort     = "PARTCUSTODY_DB_PORT"
	EnvDBUser     = "PARTCUSTODY_DB_USER"
	EnvDBPassword = "PARTCUSTODY_DB_PASSWORD"
	EnvDBName     = "PARTCUSTODY_DB_NAME"
	EnvDBSSLMode  = "PARTCUSTODY_DB_SSLMODE"

	EnvRedisURL = "PARTCUSTODY_REDIS_URL"

	EnvS3Bucket         = "PARTCUSTODY_S3_BUCKET"
	EnvS3Region         = "PARTCUSTODY_S3_REGION"
	EnvS3Endpoint       = "PARTCUSTODY_S3_ENDPOINT"
	EnvS3Prefix         = "PARTCUSTODY_S3_PREFIX"
	EnvS3ForcePathStyle = "PARTCUSTODY_S3_FORCE_PATH_STYLE"

	EnvSyncAutoInterval  = "PARTCUSTODY_SYNC_AUTO_INTERVAL"
	EnvSyncFlushInterval = "PARTCUSTODY_SYNC_FLUSH_INTERVAL"
	EnvSyncCronInterval  = "PARTCUSTODY_SYNC_CRON_INTERVAL"

	EnvAutoMigrate = "PARTCUSTODY_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
