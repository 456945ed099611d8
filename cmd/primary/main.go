// cmd/primary is the entrypoint for the primary node: it accepts client
// writes, assigns ids, and drives replication to every secondary named
// on --secondaries.
//
// Example — one primary, two secondaries:
//
//	./primary --port 8080 --secondaries http://localhost:8081,http://localhost:8082
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
	"replicated-log/internal/health"
	"replicated-log/internal/logging"
	"replicated-log/internal/logstore"
	"replicated-log/internal/metrics"
	"replicated-log/internal/primary"
	"replicated-log/internal/replication"
)

func main() {
	cfg, err := config.LoadPrimaryConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	var wal *logstore.WAL
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("create data dir")
		}
		wal, err = logstore.OpenWAL(cfg.DataDir + "/primary.log")
		if err != nil {
			log.Fatal().Err(err).Msg("open wal")
		}
		defer wal.Close()
	}

	primaryLog := logstore.NewPrimaryLog()
	if wal != nil {
		entries, err := wal.ReadAll()
		if err != nil {
			log.Fatal().Err(err).Msg("read wal")
		}
		for _, e := range entries {
			primaryLog.Append(e.Message, e.Timestamp)
		}
		log.Info().Int("entries", len(entries)).Msg("recovered log from wal")
	}

	descriptors := make([]*health.Descriptor, 0, len(cfg.Secondaries))
	for _, endpoint := range cfg.Secondaries {
		descriptors = append(descriptors, health.NewDescriptor(endpoint))
	}

	acks := replication.NewAckTracker()
	replClient := replication.NewClient()

	pipeCfg := replication.PipelineConfig{
		ReplicationTimeout: cfg.ReplicationTimeout,
		BackoffBase:        time.Second,
		BackoffMax:         60 * time.Second,
	}

	pipelines := make([]*replication.Pipeline, 0, len(descriptors))
	for _, d := range descriptors {
		pipelines = append(pipelines, replication.NewPipeline(pipeCfg, d, primaryLog, replClient, acks, log))
	}

	detector := health.NewDetector(health.DetectorConfig{
		Interval:           cfg.HeartbeatInterval,
		Timeout:            cfg.HeartbeatTimeout,
		SuspectedThreshold: cfg.SuspectedThreshold,
		UnhealthyThreshold: cfg.UnhealthyThreshold,
	}, descriptors, log)

	node := primary.New(primaryLog, acks, descriptors, wal)
	clusterRunner := &primary.Cluster{Primary: node, Detector: detector, Pipelines: pipelines}

	var m *metrics.Primary
	if cfg.MetricsEnabled {
		m = metrics.NewPrimary()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestID(), api.Logger(log), api.Recovery(log))

	handler := api.NewPrimaryHandler(node, m)
	handler.Register(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go clusterRunner.Run(ctx, log)

	go func() {
		log.Info().Int("port", cfg.Port).Int("secondaries", len(descriptors)).Msg("primary listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down primary")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}
