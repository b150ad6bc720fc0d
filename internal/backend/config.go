package backend

import (
	"fmt"

	"github.com/glensd/personalExpenseTracker/internal/config"
	"github.com/glensd/personalExpenseTracker/internal/storage"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	driver, err := storage.ParseDialect(appConfig.DBDriver)
	if err != nil {
		return Config{}, fmt.Errorf("invalid database driver in config: %w", err)
	}

	return Config{
		Driver:       driver,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		DatabaseURL:  appConfig.DatabaseURL,

		RedisAddr:     appConfig.RedisAddr,
		RedisPassword: appConfig.RedisPassword,
		RedisDB:       appConfig.RedisDB,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	switch c.Driver {
	case storage.DialectSQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite driver")
		}
	case storage.DialectPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for postgres driver")
		}
	default:
		return fmt.Errorf("invalid database driver: %s", c.Driver)
	}
	// Redis and AMQP are optional
	return nil
}
