package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glensd/personalExpenseTracker/internal/amqp"
	"github.com/glensd/personalExpenseTracker/internal/auth"
	"github.com/glensd/personalExpenseTracker/internal/log"
	"github.com/glensd/personalExpenseTracker/internal/storage"
)

const redisPingTimeout = 3 * time.Second

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend opens the database, then wires the optional Redis revocation
// store and AMQP publisher. Only a database failure is fatal.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	repo, err := f.openRepository(ctx, config)
	if err != nil {
		return nil, err
	}

	result := &BackendResult{Repository: repo}
	closers := []func() error{repo.Close}

	result.Revocation, closers = f.createRevocationStore(ctx, config, closers)

	if config.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			result.Publisher = amqpClient
			closers = append(closers, amqpClient.Close)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		// Close in reverse order of creation.
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	f.logger.Info("Initialized backend",
		"driver", config.Driver,
		"redis_enabled", config.RedisAddr != "",
		"amqp_enabled", result.Publisher != nil)

	return result, nil
}

func (f *DefaultFactory) openRepository(ctx context.Context, config Config) (*storage.Repository, error) {
	switch config.Driver {
	case storage.DialectPostgres:
		repo, err := storage.NewPostgresRepository(ctx, config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := storage.NewSQLiteRepository(ctx, config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Debug("Opened SQLite database", "db_path", config.SQLiteDBPath)
		return repo, nil
	}
}

// createRevocationStore prefers Redis so logouts survive restarts and are
// shared between replicas. An unreachable Redis falls back to memory.
func (f *DefaultFactory) createRevocationStore(ctx context.Context, config Config, closers []func() error) (auth.RevocationStore, []func() error) {
	if config.RedisAddr == "" {
		return auth.NewMemoryRevocationStore(), closers
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		f.logger.Warn("Redis unreachable, using in-memory token revocation",
			"addr", config.RedisAddr, "error", err)
		_ = client.Close()
		return auth.NewMemoryRevocationStore(), closers
	}

	f.logger.Info("Initialized Redis token revocation", "addr", config.RedisAddr, "db", config.RedisDB)
	return auth.NewRedisRevocationStore(client), append(closers, client.Close)
}
