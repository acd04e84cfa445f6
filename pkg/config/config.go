package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/partcustody/pkg/enums"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	S3           S3Config
	Sync         SyncConfig
	FeatureFlags FeatureFlagsConfig
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

// validate checks the settings required by the selected storage driver only,
// so a memory-backed dev process needs nothing beyond the app section.
func (c *Config) validate() error {
	driver, err := enums.ParseStorageDriver(c.Storage.Driver)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvStorageDriver, err)
	}
	switch driver {
	case enums.StorageDriverSQL:
		if c.DB.IsSQLite() && c.DB.DSN == "" {
			c.DB.DSN = defaultSQLiteDSN
		}
		if err := c.DB.ensureDSN(); err != nil {
			return err
		}
	case enums.StorageDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s is required for the redis storage driver", EnvRedisURL)
		}
	case enums.StorageDriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("%s is required for the s3 storage driver", EnvS3Bucket)
		}
	}
	return nil
}

type AppConfig struct {
	Env          string   `envconfig:"PARTCUSTODY_APP_ENV" required:"true"`
	Port         string   `envconfig:"PARTCUSTODY_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"PARTCUSTODY_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PARTCUSTODY_LOG_WARN_STACK" default:"false"`
	Reporter     string   `envconfig:"PARTCUSTODY_APP_REPORTER" default:"Driver"`
	CORSOrigins  []string `envconfig:"PARTCUSTODY_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver    string `envconfig:"PARTCUSTODY_STORAGE_DRIVER" default:"memory"`
	Namespace string `envconfig:"PARTCUSTODY_STORAGE_NAMESPACE" default:"pc"`
}

// DriverKind returns the parsed driver; Load has already rejected unknown values.
func (s StorageConfig) DriverKind() enums.StorageDriver {
	driver, err := enums.ParseStorageDriver(s.Driver)
	if err != nil {
		return enums.StorageDriverMemory
	}
	return driver
}

const defaultSQLiteDSN = "file:partcustody.db?cache=shared"

type DBConfig struct {
	DSN    string `envconfig:"PARTCUSTODY_DB_DSN"`
	Driver string `envconfig:"PARTCUSTODY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PARTCUSTODY_DB_HOST"`
	LegacyPort     int    `envconfig:"PARTCUSTODY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PARTCUSTODY_DB_USER"`
	LegacyPassword string `envconfig:"PARTCUSTODY_DB_PASSWORD"`
	LegacyName     string `envconfig:"PARTCUSTODY_DB_NAME"`
	LegacySSLMode  string `envconfig:"PARTCUSTODY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARTCUSTODY_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PARTCUSTODY_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PARTCUSTODY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PARTCUSTODY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"PARTCUSTODY_REDIS_URL"`
	Address      string        `envconfig:"PARTCUSTODY_REDIS_ADDR"`
	Password     string        `envconfig:"PARTCUSTODY_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARTCUSTODY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARTCUSTODY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARTCUSTODY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARTCUSTODY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARTCUSTODY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARTCUSTODY_REDIS_WRITE_TIMEOUT" default:"5s"`
	// IdempotencyTTL bounds how long a replayed capture request returns the stored response.
	IdempotencyTTL time.Duration `envconfig:"PARTCUSTODY_REDIS_IDEMPOTENCY_TTL" default:"24h"`
}

type S3Config struct {
	Bucket         string `envconfig:"PARTCUSTODY_S3_BUCKET"`
	Region         string `envconfig:"PARTCUSTODY_S3_REGION" default:"us-east-1"`
	Endpoint       string `envconfig:"PARTCUSTODY_S3_ENDPOINT"`
	Prefix         string `envconfig:"PARTCUSTODY_S3_PREFIX" default:"partcustody/"`
	ForcePathStyle bool   `envconfig:"PARTCUSTODY_S3_FORCE_PATH_STYLE" default:"false"`
}

type SyncConfig struct {
	// AutoInterval of zero disables the background outbox-sync job.
	AutoInterval  time.Duration `envconfig:"PARTCUSTODY_SYNC_AUTO_INTERVAL" default:"0s"`
	FlushInterval time.Duration `envconfig:"PARTCUSTODY_SYNC_FLUSH_INTERVAL" default:"1m"`
	CronInterval  time.Duration `envconfig:"PARTCUSTODY_SYNC_CRON_INTERVAL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PARTCUSTODY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
