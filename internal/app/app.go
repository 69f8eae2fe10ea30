// Package app owns the admin API's process state. The host starts it once
// its own state is ready and stops it before tearing that state down.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/restadmin/internal/api"
	"github.com/mcoot/restadmin/internal/config"
	"github.com/mcoot/restadmin/internal/factory"
)

// App ties the API server's lifetime to the host's
type App struct {
	cfg       *config.Config
	serverCfg api.ServerConfig
	services  *factory.App
	logger    *slog.Logger

	server *api.Server
	errCh  chan error
}

// New prepares an App. The listener is not bound until Start.
func New(cfg *config.Config, serverCfg api.ServerConfig, services *factory.App, logger *slog.Logger) *App {
	serverCfg.Addr = cfg.Addr()
	return &App{
		cfg:       cfg,
		serverCfg: serverCfg,
		services:  services,
		logger:    logger,
	}
}

// Start binds the listener and serves in the background. Bind errors are
// returned directly; later serve errors are reported by Err.
func (a *App) Start() error {
	if a.server != nil {
		return errors.New("app already started")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:           a.logger,
		AuthService:      a.services.AuthService,
		WhitelistService: a.services.WhitelistService,
		Clock:            a.services.Clock,
		Metrics:          a.services.Metrics,
	})

	server := api.NewServer(router, a.serverCfg, a.logger)
	if err := server.Listen(); err != nil {
		return err
	}

	a.server = server
	a.errCh = make(chan error, 1)
	go func() {
		a.errCh <- server.Serve()
	}()

	a.logger.Info("started restadmin", slog.String("addr", server.Addr()))
	return nil
}

// Err delivers the serve error, or nil once the server has been stopped
func (a *App) Err() <-chan error {
	return a.errCh
}

// Addr returns the bound address, valid after Start
func (a *App) Addr() string {
	if a.server == nil {
		return a.serverCfg.Addr
	}
	return a.server.Addr()
}

// Stop shuts the server down and releases the directory. Calling Stop on
// an App that was never started only releases the directory.
func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
		a.server = nil
	}
	errs = append(errs, a.services.Close())

	a.logger.Info("stopped restadmin")
	return errors.Join(errs...)
}
