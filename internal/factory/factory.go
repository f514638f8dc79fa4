package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/nextliferp/accountd/internal/dependencies/clock"
	"github.com/nextliferp/accountd/internal/services/account"
	"github.com/nextliferp/accountd/internal/services/gateway"
	"github.com/nextliferp/accountd/internal/services/playerstate"
	"github.com/nextliferp/accountd/internal/services/session"
	"github.com/nextliferp/accountd/internal/storage"
	"github.com/nextliferp/accountd/internal/storage/memory"
	redisstorage "github.com/nextliferp/accountd/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AccountService     *account.Service
	SessionService     *session.Service
	PlayerStateService *playerstate.Service
	Gateway            *gateway.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig holds session issuance settings (optional)
	// If nil, defaults to session.DefaultConfig(). A non-nil config with
	// TTL 0 means sessions never expire, so nil and zero must stay distinct.
	SessionConfig *session.Config
	// GatewayConfig holds gateway settings (optional)
	GatewayConfig gateway.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	sessionCfg := session.DefaultConfig()
	if cfg.SessionConfig != nil {
		sessionCfg = *cfg.SessionConfig
	}

	return newWithDependencies(store, clk, sessionCfg, cfg.GatewayConfig), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, sessionCfg session.Config, gatewayCfg gateway.Config) *App {
	accountService := account.New(store, clk)
	sessionService := session.New(store, clk, sessionCfg)
	playerStateService := playerstate.New(store, clk)
	gw := gateway.New(accountService, sessionService, playerStateService, gatewayCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		AccountService:     accountService,
		SessionService:     sessionService,
		PlayerStateService: playerStateService,
		Gateway:            gw,
	}
}
