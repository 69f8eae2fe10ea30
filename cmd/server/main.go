package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/restadmin/internal/api"
	"github.com/mcoot/restadmin/internal/app"
	"github.com/mcoot/restadmin/internal/config"
	redisdirectory "github.com/mcoot/restadmin/internal/directory/redis"
	"github.com/mcoot/restadmin/internal/factory"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	configPath := getEnvOrDefault("RESTADMIN_CONFIG", config.DefaultPath)

	// Refuse to bind anything with a weak token
	cfg, err := config.Load(configPath)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrTokenPlaceholder):
			logger.Error("you must change the token in the config file; use at least 12 characters",
				slog.String("path", configPath))
		case errors.Is(err, config.ErrTokenTooShort):
			logger.Error("the token in the config file is too short; use at least 12 characters",
				slog.String("path", configPath))
		default:
			logger.Error("failed to load config", slog.String("path", configPath), slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		Token:         cfg.Token,
		Logger:        logger,
		DirectoryType: os.Getenv("DIRECTORY_TYPE"),
		WhitelistPath: getEnvOrDefault("WHITELIST_FILE", "whitelist.json"),
		UserCachePath: os.Getenv("USERCACHE_FILE"),
	}

	// Configure Redis if directory type is redis
	if factoryCfg.DirectoryType == factory.DirectoryTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when DIRECTORY_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisdirectory.DefaultConfig()
		redisCfg.URL = redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	services, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	a := app.New(cfg, api.DefaultServerConfig(), services, logger)
	if err := a.Start(); err != nil {
		logger.Error("failed to start", slog.String("error", err.Error()))
		_ = services.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown or error
	exitCode := 0
	select {
	case err := <-a.Err():
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}
	stop()

	if err := a.Stop(context.Background()); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		exitCode = 1
	}
	os.Exit(exitCode)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
