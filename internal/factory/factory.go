package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/restadmin/internal/dependencies/clock"
	"github.com/mcoot/restadmin/internal/directory"
	"github.com/mcoot/restadmin/internal/directory/memory"
	redisdirectory "github.com/mcoot/restadmin/internal/directory/redis"
	"github.com/mcoot/restadmin/internal/metrics"
	"github.com/mcoot/restadmin/internal/services/auth"
	"github.com/mcoot/restadmin/internal/services/whitelist"
)

// Directory type constants
const (
	DirectoryTypeMemory = "memory"
	DirectoryTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Infrastructure
	Clock   clock.Clock
	Metrics *metrics.Metrics

	// Host directory
	Directory directory.Directory

	// Services
	AuthService      *auth.Service
	WhitelistService *whitelist.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Token is the admin bearer token; it must already be validated
	Token string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// DirectoryType selects the host directory backend ("memory" or "redis")
	// If empty, defaults to "memory"
	DirectoryType string
	// WhitelistPath is where the memory directory persists the whitelist (optional)
	WhitelistPath string
	// UserCachePath seeds the memory directory's user cache (optional)
	UserCachePath string
	// RedisConfig holds Redis connection settings (required if DirectoryType is "redis")
	RedisConfig *redisdirectory.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	directoryType := cfg.DirectoryType
	if directoryType == "" {
		directoryType = DirectoryTypeMemory
	}

	m := metrics.New(prometheus.NewRegistry())

	var dir directory.Directory
	var closers []io.Closer

	switch directoryType {
	case DirectoryTypeMemory:
		mem := memory.New(cfg.WhitelistPath)
		if cfg.UserCachePath != "" {
			if err := mem.LoadUserCache(cfg.UserCachePath); err != nil {
				return nil, err
			}
		}
		if err := mem.LoadWhitelist(); err != nil {
			return nil, err
		}
		dir = mem
	case DirectoryTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when DirectoryType is redis")
		}
		redisDir, err := redisdirectory.New(*cfg.RedisConfig, metrics.NewRedisHook(m))
		if err != nil {
			return nil, fmt.Errorf("connect redis directory: %w", err)
		}
		dir = redisDir
		closers = append(closers, redisDir)
	default:
		return nil, errors.New("invalid DirectoryType: must be 'memory' or 'redis'")
	}

	app := newWithDependencies(clock.New(), m, dir, cfg.Token, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(clk clock.Clock, m *metrics.Metrics, dir directory.Directory, token string, logger *slog.Logger) *App {
	return &App{
		Clock:            clk,
		Metrics:          m,
		Directory:        dir,
		AuthService:      auth.New(token),
		WhitelistService: whitelist.New(dir, logger, m),
	}
}

// Close releases backend connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
