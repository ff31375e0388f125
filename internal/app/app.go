package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/startpage/internal/clock"
	"github.com/MrSnakeDoc/startpage/internal/config"
	"github.com/MrSnakeDoc/startpage/internal/configstore"
	"github.com/MrSnakeDoc/startpage/internal/editor"
	"github.com/MrSnakeDoc/startpage/internal/httpserver"
	"github.com/MrSnakeDoc/startpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/startpage/internal/logger"
	"github.com/MrSnakeDoc/startpage/internal/redis"
	"github.com/MrSnakeDoc/startpage/internal/render"
	"github.com/MrSnakeDoc/startpage/internal/sources/homepage"
	"github.com/MrSnakeDoc/startpage/internal/store"
	"github.com/MrSnakeDoc/startpage/internal/store/file"
	redisstore "github.com/MrSnakeDoc/startpage/internal/store/redis"
	"github.com/MrSnakeDoc/startpage/internal/utils"
	"github.com/MrSnakeDoc/startpage/internal/version"
	"github.com/MrSnakeDoc/startpage/internal/weather"
)

const loadTimeout = 10 * time.Second

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	hub         *clock.Hub
	store       *configstore.Store
	fileStore   *file.Store // nil with the Redis backend
	redisClient *goredis.Client
}

// New loads the configuration, connects the persistence backend and wires the HTTP server.
func New() (*App, error) {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	backend, pinger, redisClient, err := openBackend(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	seed := homepage.SeedDefaults(homepage.NewLoader(cfg.SeedServicesFile, cfg.SeedBookmarksFile), loggerClient.Named("seed"))
	configStore := configstore.New(backend, seed, loggerClient.Named("configstore"))

	loadCtx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	doc := configStore.Load(loadCtx)
	cancel()
	loggerClient.Info("configuration loaded",
		logger.Int("categories", len(doc.Categories)),
		logger.Bool("weather", doc.WeatherLat != "" && doc.WeatherLon != ""))

	fetcher := weather.New(weather.Options{
		BaseURL:   cfg.WeatherBaseURL,
		UserAgent: cfg.WeatherUserAgent,
		Timeout:   cfg.WeatherTimeout,
	}, loggerClient.Named("weather"))
	hub := clock.NewHub(cfg.ClockInterval, nil, loggerClient.Named("clock"))

	renderer, err := render.New(fetcher, hub)
	if err != nil {
		return nil, err
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Store:          configStore,
		Editor:         editor.New(configStore, loggerClient.Named("editor")),
		Renderer:       renderer,
		Weather:        fetcher,
		Clock:          hub,
		Backend:        pinger,
		RateLimitBurst: cfg.RateLimitBurst,
		RateLimitRPM:   cfg.RateLimitPerMin,
	}

	a := &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		hub:         hub,
		store:       configStore,
		redisClient: redisClient,
	}
	if fs, ok := backend.(*file.Store); ok {
		a.fileStore = fs
	}
	return a, nil
}

// openBackend selects Redis when an address is configured, the JSON file otherwise.
func openBackend(cfg *config.Config, log logger.Logger) (store.Backend, deps.Pinger, *goredis.Client, error) {
	if !cfg.UseRedis() {
		fs := file.NewStore(cfg.ConfigFile)
		log.Info("using file backend", logger.String("path", fs.Path()))
		return fs, fs, nil, nil
	}

	client, err := redis.New(context.Background(), redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, log.Named("redis"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	rs := redisstore.NewStore(client)
	log.Info("using redis backend", logger.String("key", redisstore.ConfigKey()))
	return rs, rs, client, nil
}

func (a *App) watchConfigFile(ctx context.Context) error {
	a.logger.Info("watching config file", logger.String("path", a.fileStore.Path()))
	return a.fileStore.Watch(ctx, file.DefaultDebounce,
		func(ctx context.Context) {
			if _, err := a.store.Reload(ctx); err != nil {
				a.logger.Warn("ignoring invalid config file change", logger.Error(err))
			}
		},
		func(err error) {
			a.logger.Warn("config watcher error", logger.Error(err))
		})
}

// Run serves until SIGINT/SIGTERM or the first component failure.
func (a *App) Run() error {
	a.logger.Infof("🚀 Starting startpage v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("startpage %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.hub.Run(gctx) })

	if a.fileStore != nil && a.cfg.WatchConfigFile {
		g.Go(func() error { return a.watchConfigFile(gctx) })
	}

	g.Go(func() error {
		if err := a.server.Start(gctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}
	_ = a.logger.Sync()

	if err != nil {
		return err
	}
	a.logger.Info("✅ startpage stopped cleanly")
	return nil
}
