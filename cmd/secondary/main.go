// cmd/secondary is the entrypoint for a secondary node: it accepts
// replicate calls from a primary, stores entries idempotently, and
// serves reads and a heartbeat health check.
//
// Example:
//
//	./secondary --port 8081
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"replicated-log/internal/api"
	"replicated-log/internal/config"
	"replicated-log/internal/logging"
	"replicated-log/internal/metrics"
	"replicated-log/internal/secondary"
)

func main() {
	cfg, err := config.LoadSecondaryConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	node := secondary.New(cfg.Delay)

	var m *metrics.Secondary
	if cfg.MetricsEnabled {
		m = metrics.NewSecondary()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestID(), api.Logger(log), api.Recovery(log))

	handler := api.NewSecondaryHandler(node, m)
	handler.Register(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Dur("delay", cfg.Delay).Msg("secondary listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down secondary")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}
