package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/awareness/internal/config"
	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/export"
	"github.com/MrSnakeDoc/awareness/internal/httpserver"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
	"github.com/MrSnakeDoc/awareness/internal/index"
	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/redis"
	"github.com/MrSnakeDoc/awareness/internal/render"
	"github.com/MrSnakeDoc/awareness/internal/scheduler"
	"github.com/MrSnakeDoc/awareness/internal/site"
	"github.com/MrSnakeDoc/awareness/internal/sources/content"
	redisstore "github.com/MrSnakeDoc/awareness/internal/store/redis"
	"github.com/MrSnakeDoc/awareness/internal/utils"
	"github.com/MrSnakeDoc/awareness/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	site     *site.Site
	renderer *render.Renderer
	cache    *index.PageCache
}

// New builds the parts shared by every command. Nothing is loaded or
// connected yet.
func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	renderer, err := render.New(render.Options{
		SiteURL:  cfg.SiteURL,
		SiteName: cfg.SiteName,
		Minify:   cfg.Minify,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	routes := domain.MustRouteTable(domain.DefaultRoutes)
	s := site.New(content.NewLoader(cfg.ContentFile), routes, loggerClient)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		site:     s,
		renderer: renderer,
		cache:    index.NewPageCache(),
	}, nil
}

func (a *App) service(store site.PageStore) (*site.Service, error) {
	policy, err := site.ParseNotFoundPolicy(a.cfg.NotFoundPolicy)
	if err != nil {
		return nil, err
	}
	return site.NewService(a.site, a.renderer, a.cache, store, site.ServiceOptions{
		TTL:    a.cfg.CacheTTL,
		Policy: policy,
	}, a.logger), nil
}

// Export loads the content once and writes the static site to dir.
func (a *App) Export(ctx context.Context, dir string) (export.Report, error) {
	if _, _, err := a.site.Load(); err != nil {
		return export.Report{}, fmt.Errorf("failed to load content: %w", err)
	}
	svc, err := a.service(nil)
	if err != nil {
		return export.Report{}, err
	}
	return export.New(svc, a.logger, export.DefaultConcurrency).Export(ctx, dir)
}

// connectRedis opens the shared page cache. A failure is not fatal; the
// site is then served from memory only.
func (a *App) connectRedis(ctx context.Context) *goredis.Client {
	if !a.cfg.RedisEnabled() {
		a.logger.Info("redis not configured, page cache is per instance")
		return nil
	}

	client, err := redis.Connect(ctx, redis.ConnectOptions{
		Addr:           a.cfg.RedisAddr,
		User:           a.cfg.RedisUser,
		Password:       a.cfg.RedisPassword,
		DB:             a.cfg.RedisDB,
		DialTimeout:    a.cfg.RedisDT,
		ReadTimeout:    a.cfg.RedisRT,
		WriteTimeout:   a.cfg.RedisWT,
		PoolSize:       a.cfg.RedisPoolSize,
		ConnectTimeout: a.cfg.RedisConnectTimeout,
		RetryInterval:  a.cfg.RedisRetryInterval,
		MaxWait:        a.cfg.RedisMaxWait,
		PingTimeout:    a.cfg.RedisPingTimeout,
		WarnThreshold:  a.cfg.RedisWarnThreshold,
	}, a.logger)
	if err != nil {
		a.logger.Warn("continuing without shared page cache", logger.Error(err))
		return nil
	}
	return client
}

// Run serves the site until ctx is cancelled or a termination signal
// arrives.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting awareness v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("awareness %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := a.connectRedis(ctx)
	var store *redisstore.Store
	if redisClient != nil {
		store = redisstore.NewStore(redisClient)
		defer func() {
			utils.MustClose(redisClient, a.logger, "redis")
			a.logger.Info("✅ Redis closed")
		}()
	}

	// Interface values stay nil when Redis is disabled.
	var pageStore site.PageStore
	var publisher scheduler.RevisionPublisher
	var flusher scheduler.StaleFlusher
	if store != nil {
		pageStore, publisher, flusher = store, store, store
	}

	svc, err := a.service(pageStore)
	if err != nil {
		return err
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	// Start content reloader (loads content and starts periodic refresh)
	reloader := scheduler.NewContentReloader(a.site, a.cache, publisher, a.logger, a.cfg.ReloadInterval, reloadTrigger)
	if err := reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start content reloader: %w", err)
	}
	defer reloader.Stop()
	a.logger.Info("content reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if store != nil {
		if err := scheduler.NewRedisSyncer(store, a.cache, a.logger).Sync(ctx); err != nil {
			a.logger.Warn("failed to warm page cache from redis", logger.Error(err))
		}
	}

	if a.cfg.WatchContent && a.cfg.ContentFile != "" {
		watcher, err := scheduler.NewContentWatcher(a.cfg.ContentFile, reloadTrigger, a.logger, scheduler.DefaultDebounce)
		if err == nil {
			err = watcher.Start(ctx)
		}
		if err != nil {
			a.logger.Warn("content file watch disabled", logger.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	// Start garbage collector
	gc := scheduler.NewGarbageCollector(flusher, a.cache, a.logger, a.cfg.GCInterval)
	if err := gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	defer gc.Stop()
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	d := deps.Deps{
		Logger:        a.logger,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  a.cfg.AllowedHosts,
		AllowedCIDRS:  a.cfg.AllowedCIDRS,
		TrustProxy:    a.cfg.TrustProxy,
		CORSOrigins:   a.cfg.CORSOrigins,
		RateLimit:     a.cfg.RateLimit,
		Pages:         svc,
		PageCache:     a.cache,
		RedisClient:   redisClient,
		ReloadTrigger: reloadTrigger,
	}
	server := httpserver.New(a.cfg, a.logger, d)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ awareness stopped cleanly")
	return nil
}
