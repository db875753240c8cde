// hospital/config/config.go
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8000"`

	DBUser         string `env:"DB_USER"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`
	DBPort         string `env:"DB_PORT" envDefault:"5432"`
	DBName         string `env:"DB_NAME"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	MinIOEndpoint  string        `env:"MINIO_ENDPOINT"`
	MinIOAccessKey string        `env:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string        `env:"MINIO_SECRET_KEY"`
	MinIOBucket    string        `env:"MINIO_BUCKET" envDefault:"consultation-images"`
	MinIOUseSSL    bool          `env:"MINIO_USE_SSL" envDefault:"false"`
	ImageURLTTL    time.Duration `env:"IMAGE_URL_TTL" envDefault:"15m"`
	ImageMaxBytes  int64         `env:"IMAGE_MAX_BYTES" envDefault:"5242880"`
	ImageMaxCount  int           `env:"IMAGE_MAX_COUNT" envDefault:"5"`

	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFrom       string `env:"MAIL_FROM" envDefault:"no-reply@hospital.local"`
	MailFromName   string `env:"MAIL_FROM_NAME" envDefault:"Hospital Consultations"`

	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogDir         string        `env:"LOG_DIR" envDefault:"./logs"`
	MaxConnections int           `env:"MAX_CONNECTIONS" envDefault:"1000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// empty disables the background sweep
	SlotSweepSchedule string `env:"SLOT_SWEEP_SCHEDULE"`
	SlotTimezone      string `env:"SLOT_TIMEZONE" envDefault:"UTC"`
	SocketIOEnabled   bool   `env:"SOCKETIO_ENABLED" envDefault:"true"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	// a missing .env is fine, system env still applies
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("parse config: JWT_SECRET is required")
	}
	if _, err := cfg.SlotLocation(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SlotLocation is the zone doctors' slot strings are written in when they
// carry no offset of their own.
func (c Config) SlotLocation() (*time.Location, error) {
	if c.SlotTimezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.SlotTimezone)
	if err != nil {
		return nil, fmt.Errorf("SLOT_TIMEZONE: %w", err)
	}
	return loc, nil
}

// DSN is the key/value connection string understood by the gorm postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBSSLMode,
	)
}

// MigrationURL is the postgres:// form golang-migrate expects.
func (c Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}
