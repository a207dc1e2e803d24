package main

import (
	"context"
	"fmt"
	"log"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/internal/infrastructure/kvstore"
	"github.com/fastygo/taskboard/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/taskboard/internal/infrastructure/redis"
	"github.com/fastygo/taskboard/internal/infrastructure/remote"
	"github.com/fastygo/taskboard/internal/middleware"
	"github.com/fastygo/taskboard/internal/router"
	"github.com/fastygo/taskboard/internal/services"
	"github.com/fastygo/taskboard/internal/services/lifecycle"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/memory"
	pgRepo "github.com/fastygo/taskboard/repository/postgres"
	redisRepo "github.com/fastygo/taskboard/repository/redis"
	"github.com/fastygo/taskboard/repository/slot"
	"github.com/fastygo/taskboard/usecase/posts"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	}).With(zap.String("app", cfg.AppName), zap.String("env", cfg.Environment))
	defer func() { _ = zapLogger.Sync() }()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.SignalContext(context.Background())
	defer stop()

	var redisClient *goRedis.Client
	if cfg.UsesRedis() {
		redisClient, err = redisInfra.NewClient(appCtx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.RegisterCloser("redis", redisClient.Close)
	}

	store, err := openStore(appCtx, cfg, redisClient, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	zapLogger.Info("store opened", zap.String("driver", cfg.Store.Driver))

	taskUseCase := taskUC.New(slot.New[[]domain.Task](store, cfg.Store.TasksSlot), zapLogger.Named("tasks"))
	if err := taskUseCase.Load(appCtx); err != nil {
		zapLogger.Fatal("failed to load tasks", zap.Error(err))
	}

	postsClient := remote.NewClient(cfg.Posts, zapLogger.Named("remote"))
	var feedCache repository.FeedCache
	if redisClient != nil && cfg.Posts.CacheTTL > 0 {
		feedCache = redisRepo.NewFeedCache(redisClient, cfg.AppName+":cache:", cfg.Posts.CacheTTL)
	}
	browser := posts.NewBrowser(postsClient, feedCache, cfg.Posts.PageSize, zapLogger.Named("posts"),
		posts.WithLoadTimeout(cfg.Posts.Timeout),
	)
	if err := browser.Load(appCtx); err != nil {
		// The browser keeps the error state; a reload or the next refresh retries.
		zapLogger.Warn("initial posts load failed", zap.Error(err))
	}

	if cfg.Posts.RefreshInterval > 0 {
		refresher, err := services.NewFeedRefresher(browser, zapLogger.Named("refresher"), services.RefresherConfig{
			Interval: cfg.Posts.RefreshInterval,
			Timeout:  cfg.Posts.Timeout,
		})
		if err != nil {
			zapLogger.Fatal("invalid feed refresher config", zap.Error(err))
		}
		refresher.Start()
		manager.Register("feed_refresher", refresher.Stop)
	}

	mon := monitor.New(cfg.Monitor.Interval, zapLogger.Named("monitor"))
	mon.Register("store", true, store.Ping)
	mon.Register("posts_api", false, postsClient.Ping)
	if redisClient != nil && cfg.Store.Driver != config.DriverRedis {
		mon.Register("redis", false, func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	mon.Start()
	manager.Register("monitor", mon.Stop)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Posts:  apiHandler.NewPostsHandler(browser, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler: middleware.Chain(r.Handler,
			middleware.Recover(zapLogger),
			middleware.AccessLog(zapLogger.Named("http")),
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// openStore builds the byte store selected by STORE_DRIVER and registers its release.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	redisClient *goRedis.Client,
	manager *lifecycle.Manager,
	appLog *zap.Logger,
) (repository.ByteStore, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil

	case config.DriverBolt:
		store, err := kvstore.Open(cfg.Store.BoltPath, cfg.Store.BoltBucket)
		if err != nil {
			return nil, err
		}
		manager.RegisterCloser("bolt", store.Close)
		return store, nil

	case config.DriverRedis:
		// The client is shared with the feed cache and closed on its own.
		return redisRepo.NewByteStore(redisClient, cfg.Store.KeyPrefix), nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, appLog); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, appLog)
		if err != nil {
			return nil, err
		}
		store := pgRepo.NewByteStore(pool)
		manager.RegisterCloser("postgres", store.Close)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
