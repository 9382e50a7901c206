package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	REGION=asia-southeast1
//	REQUEST_TIMEOUT=10s
//	RATE_LIMIT_PER_MINUTE=60
//	STORE_DRIVER=mongo
//	MONGO_URI=mongodb://localhost:27017
//	MONGO_DB=stockfn
//	STOCK_COLLECTION=stock   # mongo only
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=stockfn
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Store    StoreConfig    // Which record store backs the service
	Mongo    MongoConfig    // MongoDB connection settings
	Postgres PostgresConfig // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	Region             string        // Deployment region the endpoints are bound to
	RequestTimeout     time.Duration // Per-request context deadline
	RateLimitPerMinute int           // Requests per client IP per minute; 0 disables limiting
}

// StoreConfig selects the record store implementation.
//
// Collection only applies to the mongo driver. The postgres driver always uses
// the "stock" table created by db/migrations; STOCK_COLLECTION is ignored and
// not required there.
type StoreConfig struct {
	Driver     string // mongo | postgres | memory
	Collection string // Mongo collection holding stock documents
}

// MongoConfig defines connection details for MongoDB.
type MongoConfig struct {
	URI      string
	Database string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and passed explicitly into app.InitializeApp.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REGION", "asia-southeast1")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("STORE_DRIVER", DriverMongo)
	viper.SetDefault("STOCK_COLLECTION", "stock")

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "stockfn")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "stockfn")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Region:             viper.GetString("REGION"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Store: StoreConfig{
			Driver:     viper.GetString("STORE_DRIVER"),
			Collection: viper.GetString("STOCK_COLLECTION"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DB"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// validateConfig terminates the application when required variables are missing.
func validateConfig() {
	if missing := AppConfig.Missing(); len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}

// DSN builds the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Missing lists required variables that are empty or invalid.
// Backend settings are only required for the selected STORE_DRIVER.
func (c Config) Missing() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Server.Region == "" {
		missing = append(missing, "REGION")
	}
	if c.Server.RequestTimeout < 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			missing = append(missing, "MONGO_URI")
		}
		if c.Mongo.Database == "" {
			missing = append(missing, "MONGO_DB")
		}
		if c.Store.Collection == "" {
			missing = append(missing, "STOCK_COLLECTION")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	case DriverMemory:
	default:
		missing = append(missing, "STORE_DRIVER")
	}

	return missing
}
