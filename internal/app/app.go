package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/daniilsolovey/old-ruins/config"
	"github.com/daniilsolovey/old-ruins/internal/cache"
	"github.com/daniilsolovey/old-ruins/internal/content"
	"github.com/daniilsolovey/old-ruins/internal/db"
	"github.com/daniilsolovey/old-ruins/internal/oldruins"
	"github.com/daniilsolovey/old-ruins/internal/rest"
	"github.com/daniilsolovey/old-ruins/internal/rpc"
	"github.com/daniilsolovey/old-ruins/internal/sanity"
	"github.com/daniilsolovey/old-ruins/internal/search"
	"github.com/daniilsolovey/old-ruins/internal/site"
	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const rpcPath = "/v1/rpc/"

type App struct {
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  *config.Config
	Manager *oldruins.Manager

	repo  *db.Repository
	redis *redis.Client
	cron  *cron.Cron
}

// New connects the configured backends and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Logger: logger,
		Config: cfg,
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := a.newStore(ctx)
	if err != nil {
		return nil, err
	}

	a.Manager = oldruins.NewManager(store, search.New(logger), logger)

	if cfg.App.ReindexSchedule != "" {
		a.cron, err = newScheduler(cfg.App.ReindexSchedule, a.Manager, logger)
		if err != nil {
			a.close()
			return nil, err
		}
	}

	var pages site.PageStore
	if cfg.Redis.Addr != "" {
		a.redis, err = cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.close()
			return nil, err
		}
		pages = cache.NewPageCache(a.redis, cfg.Redis.TTL, logger)
		logger.Info("page cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	s, err := site.New(a.Manager, pages, site.Config{
		SiteName:      cfg.App.SiteName,
		SiteURL:       cfg.App.SiteURL,
		Location:      loc,
		WebhookSecret: cfg.Webhook.Secret,
	}, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	site.SetupMiddleware(e, logger)

	s.RegisterRoutes(e)
	rest.NewPostHandler(a.Manager, logger).RegisterRoutes(e)
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, a.Manager)))

	a.Echo = e
	return a, nil
}

// newStore selects the Postgres mirror when enabled, the content API otherwise.
func (a *App) newStore(ctx context.Context) (content.Store, error) {
	if !a.Config.Database.Enabled {
		a.Logger.Info("serving from content API", "project", a.Config.Sanity.ProjectID, "dataset", a.Config.Sanity.Dataset)
		return NewContentStore(a.Config.Sanity, a.Logger), nil
	}

	repo, err := ConnectDB(ctx, a.Config.Database, a.Logger)
	if err != nil {
		return nil, err
	}
	a.repo = repo

	a.Logger.Info("serving from postgres mirror", "addr", a.Config.Database.Addr, "database", a.Config.Database.Database)
	return repo, nil
}

// NewContentStore creates the content API store.
func NewContentStore(cfg config.Sanity, logger *slog.Logger) *sanity.Store {
	client := sanity.NewClient(sanity.Config{
		ProjectID:  cfg.ProjectID,
		Dataset:    cfg.Dataset,
		APIVersion: cfg.APIVersion,
		UseCDN:     cfg.UseCDN,
		Token:      cfg.Token,
		Timeout:    cfg.Timeout,
	})

	return sanity.NewStore(client, logger)
}

// ConnectDB opens the mirror database, optionally logging every query.
func ConnectDB(ctx context.Context, cfg config.Database, logger *slog.Logger) (*db.Repository, error) {
	dbc := pg.Connect(&cfg.Options)

	if cfg.LogQueries {
		dbc.AddQueryHook(db.NewQueryHook(logger))
		logger.Info("SQL query logging enabled")
	}

	repo := db.New(dbc)
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}

	return repo, nil
}

// Run loads the search index and serves HTTP until the server is shut down.
func (a *App) Run(ctx context.Context) error {
	if err := a.Manager.Reindex(ctx); err != nil {
		a.Logger.Warn("initial search index build failed", "error", err)
	}

	if a.cron != nil {
		a.cron.Start()
	}

	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.Info("http server listening", "addr", addr)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if a.cron != nil {
		select {
		case <-a.cron.Stop().Done():
		case <-ctx.Done():
		}
	}

	a.close()
	return err
}

func (a *App) close() {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.Logger.Error("error closing database connection", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Error("error closing redis connection", "error", err)
		}
	}
}
