package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/cart"
	"github.com/getSono/OpenPOS-sub000/internal/config"
	"github.com/getSono/OpenPOS-sub000/internal/display"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
	apperrors "github.com/getSono/OpenPOS-sub000/internal/errors"
	"github.com/getSono/OpenPOS-sub000/internal/kitchen"
)

const sessionMaxAgeHours = 12

// redisHealthChecker is a minimal interface for Redis health checks.
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

// Stores bundles the shared-state stores and their subscriber registries.
// Each store broadcasts into its own registry; the server wires new stream
// connections into the matching one.
type Stores struct {
	Cart            *cart.Store
	CartRegistry    *broadcast.Registry
	Display         *display.Store
	DisplayRegistry *broadcast.Registry
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          domain.AppService
	stores       Stores
	hub          *kitchen.Hub
	sessionStore *sessions.CookieStore
	clock        clockwork.Clock
	db           postgresHealthChecker
	redisClient  redisHealthChecker
	rateLimiter  echo.MiddlewareFunc
	startTime    time.Time
}

// NewServer wires the HTTP layer. db and redisClient are only used by the
// readiness probe and may be nil (tests, Redis-less deployments).
func NewServer(cfg *config.Config, app domain.AppService, stores Stores, hub *kitchen.Hub, clock clockwork.Clock, db postgresHealthChecker, redisClient redisHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * sessionMaxAgeHours,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		stores:       stores,
		hub:          hub,
		sessionStore: sessionStore,
		clock:        clock,
		db:           db,
		redisClient:  redisClient,
		startTime:    clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
