// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Database Database
	RabbitMQ RabbitMQ
	Redis    Redis
	YouTube  YouTube
	Auth     Auth
	Logging  Logging
	Server   Server
	Import   Import
}

// Server contains HTTP server configuration.
type Server struct {
	Port            int
	ShutdownTimeout time.Duration
}

// Database selects and configures the record store backend. Backend is
// either "postgres" or "mongodb".
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Database struct {
	Backend        string
	Host           string
	Name           string
	User           string
	Password       string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
	MongoURI       string
}

// RabbitMQ contains broker connection and topology configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQ struct {
	Host       string
	User       string
	Password   string
	Exchange   string
	Queue      string
	RoutingKey string
	Port       int
}

// Redis contains the task queue connection configuration.
type Redis struct {
	URL string
}

// YouTube contains Data API configuration for the import path.
type YouTube struct {
	APIKey     string
	MaxUploads int64
}

// Auth contains the token verification configuration. AdminAPIKeys guard
// the operator endpoints; with none configured those endpoints reject
// every request.
type Auth struct {
	JWTSecret    string
	AdminAPIKeys []string
}

// Logging contains logging configuration.
type Logging struct {
	Level string
	File  string
}

// Import contains import worker configuration.
type Import struct {
	SweepInterval time.Duration
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Backend {
	case "postgres", "mongodb":
	default:
		return fmt.Errorf("unknown database backend %q (expected postgres or mongodb)", c.Database.Backend)
	}
	if c.Database.Backend == "mongodb" && c.Database.MongoURI == "" {
		return fmt.Errorf("database.mongouri is required for the mongodb backend")
	}
	return nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// Database
	viper.SetDefault("database.backend", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "youmdb")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.maxconnections", 10)
	viper.SetDefault("database.minconnections", 5)
	viper.SetDefault("database.maxidletime", 10*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)
	viper.SetDefault("database.mongouri", "")

	// RabbitMQ
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "youmdb.suggestions")
	viper.SetDefault("rabbitmq.queue", "youmdb.suggestions.received")
	viper.SetDefault("rabbitmq.routingkey", "suggestion.received")

	// Redis
	viper.SetDefault("redis.url", "redis://localhost:6379/0")

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.maxuploads", 10)

	// Auth
	viper.SetDefault("auth.jwtsecret", "")
	viper.SetDefault("auth.adminapikeys", []string{})

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")

	// Import
	viper.SetDefault("import.sweepinterval", 5*time.Minute)
}
