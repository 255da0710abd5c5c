package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/vivekalabs/viveka"
	fileStore "github.com/vivekalabs/viveka/internal/adapters/file"
	httpAdapter "github.com/vivekalabs/viveka/internal/adapters/http"
	"github.com/vivekalabs/viveka/internal/adapters/memory"
	redisStore "github.com/vivekalabs/viveka/internal/adapters/redis"
	"github.com/vivekalabs/viveka/internal/catalog"
	"github.com/vivekalabs/viveka/internal/config"
	"github.com/vivekalabs/viveka/internal/dialogue"
	"github.com/vivekalabs/viveka/internal/logging"
	"github.com/vivekalabs/viveka/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the advisor in server mode, exposing the conversation, the site
content catalog and the budget planner as a JSON API over HTTP.

Configuration is read from the environment (VIVEKA_* variables, .env file
supported); flags override it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("store") {
			cfg.Store, _ = cmd.Flags().GetString("store")
		}

		logger := logging.New(parseLevel(cfg.LogLevel))
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logger = logging.New(slog.LevelDebug)
		}

		return runServe(cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("store", "memory", "Session store: memory, file or redis")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runServe(cfg *config.Config, logger *slog.Logger) error {
	opts := []viveka.Option{viveka.WithLogger(logger)}

	switch cfg.Store {
	case "file":
		opts = append(opts, viveka.WithStore(fileStore.New(cfg.FilePath)))
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		opts = append(opts,
			viveka.WithStore(redisStore.NewFromClient(client, redisStore.WithTTL(cfg.SessionTTL))),
			viveka.WithLocker(redisStore.NewLocker(client, "viveka:")),
		)
	default:
		opts = append(opts, viveka.WithStore(memory.NewStore()))
	}

	metrics := observability.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	opts = append(opts, viveka.WithLifecycleHooks(metrics.Hooks()))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	opts = append(opts, viveka.WithVerifier(dialogue.RateVerifier(rng, cfg.AcceptRate)))

	advisor, err := viveka.New(opts...)
	if err != nil {
		return fmt.Errorf("error initializing viveka: %w", err)
	}

	cat := catalog.Default()
	if cfg.ContentPack != "" {
		cat, err = catalog.Load(cfg.ContentPack)
		if err != nil {
			return fmt.Errorf("failed to load content pack: %w", err)
		}
	}

	server := httpAdapter.NewServer(advisor,
		httpAdapter.WithCatalog(cat),
		httpAdapter.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Handler(),
	}

	// Channel to listen for errors coming from the listeners.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting Viveka Server", "addr", cfg.Addr, "store", cfg.Store)
		serverErrors <- srv.ListenAndServe()
	}()

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			logger.Info("Starting metrics endpoint", "addr", cfg.MetricsAddr)
			serverErrors <- metricsSrv.ListenAndServe()
		}()
	}

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("Starting shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(ctx)
		}
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Viveka Server stopped gracefully")
	}

	return nil
}
