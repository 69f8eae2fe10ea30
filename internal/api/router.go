package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/restadmin/internal/api/apierr"
	"github.com/mcoot/restadmin/internal/api/handler"
	"github.com/mcoot/restadmin/internal/api/middleware"
	"github.com/mcoot/restadmin/internal/dependencies/clock"
	"github.com/mcoot/restadmin/internal/metrics"
	sharedmw "github.com/mcoot/restadmin/internal/middleware"
	"github.com/mcoot/restadmin/internal/services/auth"
	"github.com/mcoot/restadmin/internal/services/whitelist"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	WhitelistService *whitelist.Service
	// Clock times request logs (optional, defaults to the system clock)
	Clock clock.Clock
	// Metrics enables request metrics and GET /metrics (optional)
	Metrics *metrics.Metrics
}

// NewRouter creates the admin API handler. The auth gate wraps the whole
// router, so unknown paths are also rejected without a valid token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware(clk))
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.WhitelistService)
	whitelistHandler := handler.NewWhitelistHandler(cfg.WhitelistService)

	// Player routes
	r.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)

	// Whitelist routes
	r.HandleFunc("/whitelist", whitelistHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/whitelist/{"+handler.IDOrNameVar+"}", whitelistHandler.Check).Methods(http.MethodGet)
	r.HandleFunc("/whitelist/{"+handler.IDOrNameVar+"}", whitelistHandler.Add).Methods(http.MethodPost)
	r.HandleFunc("/whitelist/{"+handler.IDOrNameVar+"}", whitelistHandler.Remove).Methods(http.MethodDelete)

	// Outermost first: recovery, logging, auth, routing
	var h http.Handler = r
	h = middleware.Auth(cfg.AuthService)(h)
	h = sharedmw.Logging(cfg.Logger, clk)(h)
	h = middleware.Recovery(cfg.Logger)(h)

	return h
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}

func methodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewMethodNotAllowedError())
}
