package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Lifecycle LifecycleConfig
	Events    EventsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// login attempts per client IP
	LoginRatePerMinute int   `envconfig:"LOGIN_RATE_PER_MINUTE" default:"10"`
	LoginBurst         int   `envconfig:"LOGIN_BURST" default:"5"`
	MaxUploadBytes     int64 `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type RedisConfig struct {
	Addr        string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password    string `envconfig:"REDIS_PASSWORD" default:""`
	DB          int    `envconfig:"REDIS_DB" default:"0"`
	QueuePrefix string `envconfig:"JOB_QUEUE_PREFIX" default:"rental:jobs"`
}

type StorageConfig struct {
	Bucket          string `envconfig:"S3_BUCKET" default:"booking-documents"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Endpoint        string `envconfig:"S3_ENDPOINT" default:""`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID" default:""`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY" default:""`
}

type SchedulerConfig struct {
	Enabled     bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	DailyCron   string `envconfig:"SCHEDULE_DAILY_CRON" default:"0 6 * * *"`
	MonthlyCron string `envconfig:"SCHEDULE_MONTHLY_CRON" default:"0 7 1 * *"`
}

type LifecycleConfig struct {
	BookingArchiveAfterDays int    `envconfig:"BOOKING_ARCHIVE_AFTER_DAYS" default:"90"`
	GuestArchiveAfterDays   int    `envconfig:"GUEST_ARCHIVE_AFTER_DAYS" default:"365"`
	TimeZone                string `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
}

type EventsConfig struct {
	BufferSize      int           `envconfig:"EVENT_BUFFER_SIZE" default:"256"`
	Workers         int           `envconfig:"EVENT_WORKERS" default:"2"`
	DispatchTimeout time.Duration `envconfig:"EVENT_DISPATCH_TIMEOUT" default:"10s"`
	JobWorkers      int           `envconfig:"JOB_WORKERS" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *LifecycleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err.Error())
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadDBConfig reads only the database group, for tools that never start the server.
func LoadDBConfig() (DBConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err.Error())
	}

	var cfg DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DBConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:               "8889", // Test port
			LoginRatePerMinute: 600,
			LoginBurst:         100,
			MaxUploadBytes:     1 << 20,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-e2e-only",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "24h",
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			QueuePrefix: "test:jobs",
		},
		Storage: StorageConfig{
			Bucket: "test-documents",
			Region: "us-east-1",
		},
		Scheduler: SchedulerConfig{
			Enabled:     false,
			DailyCron:   "0 6 * * *",
			MonthlyCron: "0 7 1 * *",
		},
		Lifecycle: LifecycleConfig{
			BookingArchiveAfterDays: 90,
			GuestArchiveAfterDays:   365,
			TimeZone:                "UTC",
		},
		Events: EventsConfig{
			BufferSize:      64,
			Workers:         1,
			DispatchTimeout: 5 * time.Second,
			JobWorkers:      1,
		},
	}
}
