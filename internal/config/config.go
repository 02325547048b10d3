package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port           string        `mapstructure:"PORT"`
	GinMode        string        `mapstructure:"GIN_MODE"`
	ClientURL      string        `mapstructure:"CLIENT_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	FirestoreEmulatorHost            string `mapstructure:"FIRESTORE_EMULATOR_HOST"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ListingCacheTTL time.Duration `mapstructure:"LISTING_CACHE_TTL"`

	AMQPURL   string `mapstructure:"AMQP_URL"`
	AMQPQueue string `mapstructure:"AMQP_QUEUE"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	MailFrom string `mapstructure:"MAIL_FROM"`
}

var keys = []string{
	"PORT", "GIN_MODE", "CLIENT_URL", "REQUEST_TIMEOUT",
	"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "FIRESTORE_EMULATOR_HOST",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "LISTING_CACHE_TTL",
	"AMQP_URL", "AMQP_QUEUE",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "MAIL_FROM",
}

// LoadConfig loads configuration from environment variables using Viper.
// Outside release mode a .env file in the working directory is read first;
// variables already set in the environment win.
func LoadConfig() (*Config, error) {
	if !strings.EqualFold(os.Getenv("GIN_MODE"), "release") {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LISTING_CACHE_TTL", "30s")
	v.SetDefault("AMQP_QUEUE", "pawmart.events")
	v.SetDefault("SMTP_PORT", 587)

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the keys needed to reach the document store are set.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.GoogleApplicationCredentials == "" && c.FirebaseServiceAccountJSONBase64 == "" && c.FirestoreEmulatorHost == "" {
		return errors.New("one of GOOGLE_APPLICATION_CREDENTIALS, FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 or FIRESTORE_EMULATOR_HOST is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.ListingCacheTTL <= 0 {
		return errors.New("LISTING_CACHE_TTL must be positive")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
