// main package for the tts-chunker service
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

	"github.com/book-expert/logger"
	"github.com/book-expert/tts-chunker/internal/config"
	"github.com/book-expert/tts-chunker/internal/metrics"
	"github.com/book-expert/tts-chunker/internal/objectstore"
	"github.com/book-expert/tts-chunker/internal/pipeline"
	"github.com/book-expert/tts-chunker/internal/worker"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName       = "tts-chunker"
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func setupLogger(logPath string) (*logger.Logger, error) {
	log, err := logger.New(logPath, serviceName+".log")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func loadConfig() (*config.Config, error) {
	bootstrapLog, err := logger.New(os.TempDir(), serviceName+"-bootstrap.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create bootstrap logger: %w", err)
	}

	defer func() {
		closeErr := bootstrapLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing bootstrap logger: %v\n", closeErr)
		}
	}()

	bootstrapLog.Info("Bootstrap logger created.")

	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	err = cfg.ValidateService()
	if err != nil {
		bootstrapLog.Error("Invalid configuration: %v", err)

		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	err = cfg.EnsureDirectories()
	if err != nil {
		return nil, err
	}

	bootstrapLog.Info("Configuration loaded successfully.")

	return cfg, nil
}

// serveMetrics exposes the default registry until ctx is done.
func serveMetrics(ctx context.Context, address string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Warn("Metrics server shutdown: %v", err)
		}
	}()

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server stopped: %v", err)
		}
	}()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)

		return err
	}

	log, err := setupLogger(cfg.Paths.BaseLogsDir)
	if err != nil {
		return err
	}

	defer func() {
		closeErr := log.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing logger: %v\n", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	natsConnection, err := nats.Connect(cfg.NATS.URL, nats.Name(serviceName))
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer natsConnection.Close()

	js, err := jetstream.New(natsConnection)
	if err != nil {
		return fmt.Errorf("failed to create JetStream client: %w", err)
	}

	texts, err := objectstore.New(ctx, js, cfg.NATS.TextObjectStoreBucket)
	if err != nil {
		return err
	}

	manifests, err := objectstore.New(ctx, js, cfg.NATS.ChunkObjectStoreBucket)
	if err != nil {
		return err
	}

	preparer, err := pipeline.New(cfg.Chunking, nil)
	if err != nil {
		return err
	}

	if cfg.Metrics.ListenAddress != "" {
		serveMetrics(ctx, cfg.Metrics.ListenAddress, log)
	}

	chunkWorker, err := worker.NewNatsWorker(
		natsConnection,
		cfg.NATS.TextProcessedSubject,
		cfg.NATS.ChunksPreparedSubject,
		texts,
		manifests,
		preparer,
		metrics.New(prometheus.DefaultRegisterer),
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	log.System("TTS-Chunker initialized. Listening on %s, reading %s, writing %s.",
		cfg.NATS.TextProcessedSubject, texts.Bucket(), manifests.Bucket())

	err = chunkWorker.Run(ctx)
	if err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}

	log.System("TTS-Chunker stopped.")

	return nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
