package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gww-voice/dashboard/internal/backend"
	"github.com/gww-voice/dashboard/internal/config"
	httpapi "github.com/gww-voice/dashboard/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "voice-dashboard").Logger()

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	var api backend.API
	if cfg.DemoMode {
		api = backend.NewSeededMockBackend()
		logger.Info().Msg("using in-memory demo backend")
	} else {
		api = backend.NewHTTPClient(cfg.APIBaseURL, logger)
		logger.Info().Str("base_url", cfg.APIBaseURL).Msg("using voice agent backend")
	}

	router, hub, err := httpapi.Router(cfg, api, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Websockets are hijacked connections that Shutdown does not wait for.
	if err := hub.Close(ctxShutdown); err != nil {
		logger.Warn().Err(err).Msg("live hub did not stop cleanly")
	}
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
