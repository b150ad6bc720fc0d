package backend

import (
	"context"

	"github.com/glensd/personalExpenseTracker/internal/auth"
	"github.com/glensd/personalExpenseTracker/internal/services"
	"github.com/glensd/personalExpenseTracker/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds everything the HTTP layer needs from the outside world.
type BackendResult struct {
	Repository *storage.Repository
	// Publisher is nil when AMQP is disabled or unreachable at startup.
	Publisher  services.EventPublisher
	Revocation auth.RevocationStore
	Cleanup    CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Driver       storage.Dialect
	SQLiteDBPath string
	DatabaseURL  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
