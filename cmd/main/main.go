package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-analytics/internal/analytics/handler"
	"sales-analytics/internal/analytics/service"
	"sales-analytics/internal/config"
	serverhttp "sales-analytics/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	cache := service.NewCache(service.Options{
		StrictSchema: cfg.StrictSchema,
		Tokens: service.TokenRule{
			BannedPrefix: cfg.SkuBannedPrefix,
			MaxHyphens:   cfg.SkuMaxHyphens,
			MaxLen:       cfg.SkuMaxLen,
		},
	}, logger)

	r := serverhttp.NewRouter(cfg, logger, handler.New(cfg, cache, logger))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Bool("strict_schema", cfg.StrictSchema).
		Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
