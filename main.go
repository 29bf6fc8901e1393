package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"channel-insights/domain/repository"
	"channel-insights/infrastructure/assets"
	"channel-insights/infrastructure/cache"
	youtubeclient "channel-insights/infrastructure/clients/youtube"
	"channel-insights/infrastructure/configuration"
	"channel-insights/infrastructure/filecsv"
	"channel-insights/infrastructure/logger"
	"channel-insights/infrastructure/persistence"
	httpHandler "channel-insights/interfaces/http"
	"channel-insights/server"
	"channel-insights/usecase"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const usage = `Usage: channel-insights [flags] [serve|build]

Commands:
  serve   run the HTTP API and serve the asset directory (default)
  build   copy the asset directory into the dist directory

Flags:
`

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
		os.Exit(2)
	}
}

func main() {
	defer recoverPanic()

	flags := pflag.NewFlagSet("channel-insights", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a JSON config file")
	port := flags.Int("port", 0, "HTTP port (overrides config and PORT)")
	src := flags.String("src", "", "asset directory (overrides config)")
	dist := flags.String("dist", "", "build output directory (overrides config)")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	// Load env from files (non-destructive; OS env still has precedence)
	if loaded := configuration.LoadEnvFromFile(".env", "config.env"); len(loaded) > 0 {
		logger.GetLogger().WithField("files", loaded).Info("Detected env files in working directory")
	}
	if *configPath != "" {
		if err := configuration.LoadConfigFile(*configPath); err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot load config file")
			os.Exit(1)
		}
	} else {
		configuration.LoadConfig()
	}

	cfg := configuration.C
	if *port != 0 {
		cfg.App.Port = *port
	}
	if *src != "" {
		cfg.App.AssetDir = *src
	}
	if *dist != "" {
		cfg.App.DistDir = *dist
	}
	logger.Configure(cfg.Logger.Format, cfg.Logger.Level)

	command := "serve"
	if flags.NArg() > 0 {
		command = flags.Arg(0)
	}

	switch command {
	case "build":
		if err := cfg.Validate(false); err != nil {
			logger.GetLogger().WithField("error", err).Error("Invalid configuration")
			os.Exit(1)
		}
		if err := assets.Build(cfg.App.AssetDir, cfg.App.DistDir); err != nil {
			logger.GetLogger().WithField("error", err).Error("Build failed")
			os.Exit(1)
		}
	case "serve":
		if err := cfg.Validate(true); err != nil {
			logger.GetLogger().WithField("error", err).Error("Invalid configuration")
			os.Exit(1)
		}
		if err := serve(cfg); err != nil {
			logger.GetLogger().WithField("error", err).Error("Server returned an error")
			os.Exit(2)
		}
	default:
		flags.Usage()
		os.Exit(1)
	}
}

func serve(cfg configuration.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
		APIKey:   cfg.YouTube.APIKey,
		Endpoint: cfg.YouTube.Endpoint,
	})
	if err != nil {
		return err
	}

	favoritesStore, closeStore, err := InitiateFavorites(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	formatter, err := usecase.NewFormatter(cfg.Analysis.Locale, cfg.Analysis.Timezone)
	if err != nil {
		return err
	}

	resolver := usecase.NewChannelResolver(youtubeClient)
	loader := usecase.NewPageLoader(youtubeClient, resolver)
	analyzer := usecase.NewAnalyzer(youtubeClient, formatter)
	exporter := filecsv.NewExporter(cfg.Analysis.TimezoneLabel)
	session := usecase.NewChannelSession(loader, analyzer, favoritesStore, formatter, exporter)

	staticHandler, err := httpHandler.NewStaticHandler(cfg.App.AssetDir)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	router := server.InitiateRouter(
		cfg.App.Port,
		httpHandler.NewHealthHandler(),
		httpHandler.NewChannelHandler(session, cfg.App.ExportDir),
		staticHandler,
	)

	g, ctx := errgroup.WithContext(ctx)
	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"port":      cfg.App.Port,
		"assetDir":  cfg.App.AssetDir,
		"favorites": cfg.Favorites.Backend,
	}).Info(fmt.Sprintf("Server running at http://localhost:%d", cfg.App.Port))

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	return g.Wait()
}

// InitiateFavorites opens the configured favorites backend. The returned
// function releases its connection.
func InitiateFavorites(ctx context.Context, cfg configuration.Config) (repository.IFavorites, func(), error) {
	noop := func() {}

	switch cfg.Favorites.Backend {
	case configuration.BackendRedis:
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisClient)
		if err != nil {
			return nil, noop, err
		}
		logger.GetLogger().Info("Favorites stored in Redis")
		kv := cache.NewRedisKV(rdb, "")
		return persistence.NewFavoriteRepository(kv, cfg.Favorites.Key), func() { _ = rdb.Close() }, nil

	case configuration.BackendPostgres:
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			return nil, noop, err
		}
		if err := persistence.EnsureKVSchema(db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.GetLogger().Info("Favorites stored in PostgreSQL")
		kv := persistence.NewPostgresKV(db)
		return persistence.NewFavoriteRepository(kv, cfg.Favorites.Key), func() { _ = db.Close() }, nil

	default:
		logger.GetLogger().WithField("path", cfg.Favorites.Path).Info("Favorites stored in a local file")
		kv := persistence.NewFileKV(cfg.Favorites.Path)
		return persistence.NewFavoriteRepository(kv, cfg.Favorites.Key), noop, nil
	}
}
