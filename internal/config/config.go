package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Contact datastore drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment    string
	Port           string
	LogLevel       string
	ServerInfoPath string
	ContactsDriver string
	ContactsDSN    string
	StaticDir      string

	// ServerInfo is loaded from ServerInfoPath by NewConfig.
	ServerInfo *ServerInfo
}

func NewConfig() (*Config, error) {
	env := os.Getenv("MAILSONIC_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	config := &Config{
		Environment:    env,
		Port:           getEnvOrDefault("PORT", "8080"),
		LogLevel:       getEnvOrDefault("MAILSONIC_LOG_LEVEL", "info"),
		ServerInfoPath: getEnvOrDefault("MAILSONIC_SERVER_INFO", "serverInfo.json"),
		ContactsDriver: getEnvOrDefault("MAILSONIC_CONTACTS_DRIVER", DriverSQLite),
		ContactsDSN:    getEnvOrDefault("MAILSONIC_CONTACTS_DSN", "contacts.db"),
		StaticDir:      getEnvOrDefault("MAILSONIC_STATIC_DIR", "../client/dist"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	info, err := LoadServerInfo(config.ServerInfoPath)
	if err != nil {
		return nil, err
	}
	config.ServerInfo = info

	return config, nil
}

func (c *Config) Validate() error {
	if !isValidPort(c.Port) {
		return fmt.Errorf("PORT is not a valid port number: %q", c.Port)
	}

	if c.ServerInfoPath == "" {
		return fmt.Errorf("MAILSONIC_SERVER_INFO is required")
	}

	switch c.ContactsDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("MAILSONIC_CONTACTS_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.ContactsDriver)
	}

	if c.ContactsDSN == "" {
		return fmt.Errorf("MAILSONIC_CONTACTS_DSN is required")
	}

	return nil
}

func isValidPort(value string) bool {
	port, err := strconv.Atoi(value)
	return err == nil && port >= 1 && port <= 65535
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
