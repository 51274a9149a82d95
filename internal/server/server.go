// Package server assembles the echo instance, the core services and the
// feature modules into a runnable HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/learnhub/internal/app"
	"github.com/nfrund/learnhub/internal/auth"
	"github.com/nfrund/learnhub/internal/config"
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/handlers"
	"github.com/nfrund/learnhub/internal/middleware"
	"github.com/nfrund/learnhub/internal/module"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/registry"
	"github.com/nfrund/learnhub/internal/rendering"
	"github.com/nfrund/learnhub/internal/storage"
	"github.com/nfrund/learnhub/web"
)

// Dependencies holds the core services the server is built from.
type Dependencies struct {
	Config config.Provider
	Store  domain.Store
	Bus    pubsub.Bus
	Assets storage.Store
	// Echo is optional; tests pass their own.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Store    domain.Store
	Bus      pubsub.Bus
	Assets   storage.Store
	Registry *registry.Registry

	modules  []module.Module
	closers  []func()
	stopBoot context.CancelFunc
}

// New creates a server with its middleware, renderer and error handling in
// place. Routes and modules are added by RegisterRoutes and Boot.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil || deps.Store == nil || deps.Bus == nil || deps.Assets == nil {
		return nil, fmt.Errorf("server: config, store, bus and assets are required")
	}
	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	cookies := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(session.Middleware(cookies))
	e.Use(middleware.LoadUser(deps.Store))
	e.Use(middleware.Logger)

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	reg := registry.New(deps.Config)
	registry.Set(reg, registry.StoreKey, deps.Store)
	registry.Set(reg, registry.PublisherKey, pubsub.Publisher(deps.Bus))
	registry.Set(reg, registry.SubscriberKey, pubsub.Subscriber(deps.Bus))
	registry.Set(reg, registry.AssetsKey, deps.Assets)

	return &Server{
		E:        e,
		Cfg:      deps.Config,
		Store:    deps.Store,
		Bus:      deps.Bus,
		Assets:   deps.Assets,
		Registry: reg,
	}, nil
}

// NewFromConfig opens the store, starts tracing and the event bus and
// builds the server with every application module. The caller still has to
// RegisterRoutes and Boot.
func NewFromConfig(ctx context.Context, cfg config.Provider) (*Server, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	tracer, shutdownTracing, err := pubsub.SetupOTel(ctx, pubsub.TracingConfigFrom(cfg))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	bus := pubsub.NewWatermillBridgeWithTracer(tracer)
	assets := storage.NewDiskStore(cfg.GetAssetsDir())

	s, err := New(Dependencies{Config: cfg, Store: store, Bus: bus, Assets: assets})
	if err != nil {
		_ = bus.Close()
		shutdownTracing()
		_ = store.Close()
		return nil, err
	}
	s.closers = append(s.closers, shutdownTracing)
	s.Use(app.NewModules(app.Dependencies{
		Store:      store,
		Publisher:  bus,
		Subscriber: bus,
		Assets:     assets,
	})...)
	slog.Info("Server configured", "store", cfg.GetStoreDriver(), "assets", cfg.GetAssetsDir())
	return s, nil
}

// Use adds modules to be registered and booted by Boot.
func (s *Server) Use(mods ...module.Module) {
	s.modules = append(s.modules, mods...)
}

// authService builds the account service over the server's store.
func (s *Server) authService() *auth.Service {
	return auth.NewService(s.Store, s.Store)
}
