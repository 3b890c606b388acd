package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Mail     MailConfig     `json:"mail"`
	Storage  StorageConfig  `json:"storage"`
	Admin    AdminConfig    `json:"admin"`
	Digest   DigestConfig   `json:"digest"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

// MailConfig configures the outbound notification channel. Provider is
// either "smtp" or "ses".
type MailConfig struct {
	Provider    string        `json:"provider"`
	SMTPHost    string        `json:"smtp_host"`
	SMTPPort    int           `json:"smtp_port"`
	Username    string        `json:"username"`
	Password    string        `json:"password"`
	FromName    string        `json:"from_name"`
	FromAddress string        `json:"from_address"`
	Recipient   string        `json:"recipient"`
	SESRegion   string        `json:"ses_region"`
	Timeout     time.Duration `json:"timeout"`
}

// StorageConfig configures the optional S3 archive of rendered documents.
// Archival is disabled when Bucket is empty.
type StorageConfig struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// AdminConfig configures the admin read-side guard
type AdminConfig struct {
	PasswordHash string `json:"password_hash"`
	JWTSecret    string `json:"jwt_secret"`
}

// DigestConfig configures the scheduled submissions summary email
type DigestConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "luvix_onboarding",
			SSLMode: "disable",
		},
		Mail: MailConfig{
			Provider: "smtp",
			SMTPPort: 587,
			FromName: "LUVIX Onboarding",
			Timeout:  30 * time.Second,
		},
		Digest: DigestConfig{
			Schedule: "0 8 * * *",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DATABASE_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = p
		}
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}

	// Mail variable names match the existing deployment environment
	if provider := os.Getenv("MAIL_PROVIDER"); provider != "" {
		config.Mail.Provider = provider
	}
	if host := os.Getenv("EMAIL_HOST"); host != "" {
		config.Mail.SMTPHost = host
	}
	if port := os.Getenv("EMAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Mail.SMTPPort = p
		}
	}
	if user := os.Getenv("EMAIL_USER"); user != "" {
		config.Mail.Username = user
		if config.Mail.FromAddress == "" {
			config.Mail.FromAddress = user
		}
		// The business inbox doubles as the default recipient
		if config.Mail.Recipient == "" {
			config.Mail.Recipient = user
		}
	}
	if pass := os.Getenv("EMAIL_PASS"); pass != "" {
		config.Mail.Password = pass
	}
	if name := os.Getenv("FROM_NAME"); name != "" {
		config.Mail.FromName = name
	}
	if recipient := os.Getenv("ONBOARDING_RECIPIENT"); recipient != "" {
		config.Mail.Recipient = recipient
	}
	if region := os.Getenv("SES_REGION"); region != "" {
		config.Mail.SESRegion = region
	}
	if timeout := os.Getenv("MAIL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Mail.Timeout = d
		}
	}

	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		config.Storage.Bucket = bucket
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		config.Storage.Region = region
		if config.Mail.SESRegion == "" {
			config.Mail.SESRegion = region
		}
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		config.Storage.AccessKeyID = key
	}
	if secret := os.Getenv("AWS_SECRET_ACCESS_KEY"); secret != "" {
		config.Storage.SecretAccessKey = secret
	}

	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		config.Admin.PasswordHash = hash
	}
	if secret := os.Getenv("ADMIN_JWT_SECRET"); secret != "" {
		config.Admin.JWTSecret = secret
	}

	if enabled := os.Getenv("DIGEST_ENABLED"); enabled != "" {
		config.Digest.Enabled = enabled == "true"
	}
	if schedule := os.Getenv("DIGEST_SCHEDULE"); schedule != "" {
		config.Digest.Schedule = schedule
	}
}

// Validate reports missing mail settings before any send is attempted
func (c *MailConfig) Validate() error {
	if c.Recipient == "" {
		return fmt.Errorf("mail recipient is not configured")
	}
	switch c.Provider {
	case "smtp":
		if c.SMTPHost == "" {
			return fmt.Errorf("EMAIL_HOST is not configured")
		}
		if c.Username == "" || c.Password == "" {
			return fmt.Errorf("EMAIL_USER/EMAIL_PASS are not configured")
		}
	case "ses":
		if c.SESRegion == "" {
			return fmt.Errorf("SES_REGION is not configured")
		}
		if c.FromAddress == "" {
			return fmt.Errorf("mail from address is not configured")
		}
	default:
		return fmt.Errorf("unknown mail provider %q", c.Provider)
	}
	return nil
}

// DSN returns the GORM postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
