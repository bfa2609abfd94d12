package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Mail providers
const (
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
	MailProviderLog      = "log"
)

// DefaultSenderEmail is used when neither a from address nor SMTP user is set
const DefaultSenderEmail = "no-reply@smiportal.local"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		URL             string `yaml:"url" env:"DATABASE_URL"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level        string `yaml:"level" env:"LOG_LEVEL"`
		Format       string `yaml:"format" env:"LOG_FORMAT"`
		RollbarToken string `yaml:"rollbar_token" env:"ROLLBAR_TOKEN"`
		Environment  string `yaml:"environment" env:"APP_ENV"`
	} `yaml:"logging"`

	Mail struct {
		Provider     string `yaml:"provider" env:"MAIL_PROVIDER"`
		FromName     string `yaml:"from_name" env:"MAIL_FROM_NAME"`
		FromEmail    string `yaml:"from_email" env:"MAIL_FROM_EMAIL"`
		CompanyEmail string `yaml:"company_email" env:"MAIL_COMPANY_EMAIL"`

		SMTP struct {
			Host     string `yaml:"host" env:"SMTP_HOST"`
			Port     int    `yaml:"port" env:"SMTP_PORT"`
			Username string `yaml:"username" env:"EMAIL_USER"`
			Password string `yaml:"password" env:"EMAIL_PASS"`
			UseTLS   bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
		} `yaml:"smtp"`

		SendGrid struct {
			APIKey string `yaml:"api_key" env:"SENDGRID_API_KEY"`
		} `yaml:"sendgrid"`
	} `yaml:"mail"`

	Seed struct {
		SuperAdmin struct {
			Email    string `yaml:"email" env:"SEED_SUPER_ADMIN_EMAIL"`
			Password string `yaml:"password" env:"SEED_SUPER_ADMIN_PASSWORD"`
			FullName string `yaml:"full_name" env:"SEED_SUPER_ADMIN_NAME"`
			Branch   string `yaml:"branch" env:"SEED_SUPER_ADMIN_BRANCH"`
		} `yaml:"super_admin"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Values already present in the environment win over .env
	if err := loadDotEnv(GetEnv("DOTENV_PATH", ".env")); err != nil {
		return nil, err
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv loads a .env file when one exists
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "30s"
	config.Server.ShutdownTimeout = "10s"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "smiportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// Tokens are valid for seven days
	config.JWT.AccessTokenExpiration = "168h"
	config.JWT.Issuer = "smiportal"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Environment = "development"

	// Mail defaults
	config.Mail.Provider = MailProviderSMTP
	config.Mail.FromName = "WEB79|SMI Admin Portal"
	config.Mail.SMTP.Host = "smtp.gmail.com"
	config.Mail.SMTP.Port = 465
	config.Mail.SMTP.UseTLS = true
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database host or url is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"server read timeout":          config.Server.ReadTimeout,
		"server write timeout":         config.Server.WriteTimeout,
		"server shutdown timeout":      config.Server.ShutdownTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	config.Mail.Provider = strings.ToLower(strings.TrimSpace(config.Mail.Provider))
	switch config.Mail.Provider {
	case MailProviderSMTP, MailProviderLog:
	case MailProviderSendGrid:
		if config.Mail.SendGrid.APIKey == "" {
			return fmt.Errorf("sendgrid api key is required when mail provider is sendgrid")
		}
	default:
		return fmt.Errorf("unknown mail provider %q", config.Mail.Provider)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// SenderEmail returns the address evaluation mail is sent from
func (c *Config) SenderEmail() string {
	if c.Mail.FromEmail != "" {
		return c.Mail.FromEmail
	}
	if c.Mail.SMTP.Username != "" {
		return c.Mail.SMTP.Username
	}
	return DefaultSenderEmail
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
