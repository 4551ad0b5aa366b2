package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gigit/web/internal/api/http"
	"github.com/gigit/web/internal/api/http/handlers"
	"github.com/gigit/web/internal/auth"
	"github.com/gigit/web/internal/backend"
	"github.com/gigit/web/internal/config"
	"github.com/gigit/web/internal/content"
	"github.com/gigit/web/internal/events"
	"github.com/gigit/web/internal/observability"
	"github.com/gigit/web/internal/persistence"
	"github.com/gigit/web/internal/repository"
	"github.com/gigit/web/internal/service"
	"github.com/gigit/web/internal/session"
	"github.com/gigit/web/internal/validation"
	"github.com/gigit/web/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	api, err := backend.New(cfg.Backend.BaseURL, backend.WithTimeout(cfg.Backend.Timeout()))
	if err != nil {
		logger.Fatal("failed to build backend client", zap.Error(err))
	}

	pg, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := pg.Migrate(ctx); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	var tokens repository.TokenStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redis, err = persistence.OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		tokens = repository.NewRedisTokenStore(redis.Client(), cfg.Session.TTL())
	case config.SessionStorePostgres:
		tokens = repository.NewPostgresTokenStore(pg.Pool(), cfg.Session.TTL())
	default:
		logger.Warn("using in-memory session store; sessions are lost on restart")
		tokens = repository.NewMemoryTokenStore(cfg.Session.TTL())
	}
	logger.Info("session store ready", zap.String("store", cfg.Session.Store))

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	sessionMiddleware := auth.NewSessionMiddleware(auth.SessionConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
		TTL:        cfg.Session.TTL(),
	}, session.Dependencies{
		Backend:    api,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	pages, err := content.Load()
	if err != nil {
		logger.Fatal("failed to load page content", zap.Error(err))
	}

	v := validation.New()
	accounts := service.NewAccountService(api, logger)
	directory := service.NewDirectoryService(api, cfg.Search.ResultLimit, logger)
	searchService := service.NewSearchService(api, cfg.Search.ResultLimit, metrics, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, api.BaseURL(), pg, redis),
		Auth:    handlers.NewAuthHandler(accounts, v),
		Admin:   handlers.NewAdminHandler(accounts, v),
		Profile: handlers.NewProfileHandler(directory, v),
		Connect: handlers.NewConnectHandler(searchService, directory),
		Pages:   handlers.NewPagesHandler(pages),
		Session: sessionMiddleware,
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
