package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "github.com/ZaidAr98/PropTrack/internal/adapters/http_server"
	"github.com/ZaidAr98/PropTrack/internal/adapters/observability"
	redisad "github.com/ZaidAr98/PropTrack/internal/adapters/redis"
	"github.com/ZaidAr98/PropTrack/internal/adapters/s3images"
	"github.com/ZaidAr98/PropTrack/internal/app"
	"github.com/ZaidAr98/PropTrack/internal/shared"
	mongostore "github.com/ZaidAr98/PropTrack/internal/storage/mongo"
)

func main() {
	cfg := shared.Load()
	ctx := context.Background()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(shutdownCtx)
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	images, err := s3images.New(ctx, s3images.Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("image store init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	properties := app.NewPropertyService(store.Properties(), images, cache, cfg.CacheTTL)
	viewings := app.NewViewingService(store.Viewings(), store.Properties(), store.Clients())
	inquiries := app.NewInquiryService(store.Inquiries(), store.Clients(), store.Properties())
	clients := app.NewClientService(store.Clients())

	limiter := server.NewLimiterStore(cfg.RateLimitPerMinute, cfg.RateLimitPerMinute, 5*time.Minute)
	defer limiter.Stop()

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Properties: properties,
		Viewings:   viewings,
		Inquiries:  inquiries,
		Clients:    clients,
		Limiter:    limiter,
		Dev:        cfg.AppEnv == "dev" || cfg.AppEnv == "development",
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
