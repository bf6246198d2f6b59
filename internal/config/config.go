package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Chidesigner/Expense-tracker/internal/core"
)

// Config holds every runtime setting, loaded from the environment.
type Config struct {
	// HTTP server
	Port string

	// Persistence backend selection: memory, sqlite or postgres
	DataBackend string

	SQLiteDBPath string
	PostgresURL  string

	// AMQP event publishing (optional; empty URL disables it)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Identity
	AuthSecret string
	TokenTTL   time.Duration

	// Domain
	CategorySet    string // "default" or "compact"
	CurrencySymbol string
	RetentionYears int
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),
		PostgresURL:  getEnv("POSTGRES_URL", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		AuthSecret: getEnv("AUTH_SECRET", ""),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),

		CategorySet:    getEnv("CATEGORY_SET", "default"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₦"),
		RetentionYears: getEnvInt("RETENTION_YEARS", 100),
	}
}

// Categories returns the configured category enumeration.
func (c *Config) Categories() []core.Category {
	if c.CategorySet == "compact" {
		return core.CompactCategories
	}
	return core.DefaultCategories
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "postgres":
		if c.PostgresURL == "" {
			errors = append(errors, "POSTGRES_URL is required when using postgres backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [memory sqlite postgres]", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.AuthSecret == "" {
		errors = append(errors, "AUTH_SECRET must be set")
	} else if len(c.AuthSecret) < 16 {
		errors = append(errors, "AUTH_SECRET must be at least 16 characters")
	}

	if c.TokenTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}

	if c.CategorySet != "default" && c.CategorySet != "compact" {
		errors = append(errors, fmt.Sprintf("invalid category set '%s': must be 'default' or 'compact'", c.CategorySet))
	}

	if c.RetentionYears < 1 {
		errors = append(errors, fmt.Sprintf("invalid retention horizon %d: must be at least 1 year", c.RetentionYears))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
