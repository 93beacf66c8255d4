package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/mpavic/hexorders/internal/config"
	"github.com/mpavic/hexorders/internal/database"
	idemmemory "github.com/mpavic/hexorders/internal/idempotency/memory"
	idempostgres "github.com/mpavic/hexorders/internal/idempotency/postgres"
	"github.com/mpavic/hexorders/internal/messaging"
	"github.com/mpavic/hexorders/internal/orders/adapters"
	httpadapter "github.com/mpavic/hexorders/internal/orders/adapters/http"
	orderskafka "github.com/mpavic/hexorders/internal/orders/adapters/kafka"
	"github.com/mpavic/hexorders/internal/orders/adapters/logpub"
	ordersmemory "github.com/mpavic/hexorders/internal/orders/adapters/memory"
	orderspostgres "github.com/mpavic/hexorders/internal/orders/adapters/postgres"
	ordersapp "github.com/mpavic/hexorders/internal/orders/app"
	ordersmetrics "github.com/mpavic/hexorders/internal/orders/metrics"
	"github.com/mpavic/hexorders/internal/orders/ports"
	"github.com/mpavic/hexorders/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(telemetry.ParseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.OTelEndpoint != "" {
		tel, err := telemetry.Setup(ctx, telemetry.Config{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			Environment:    cfg.Service.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
			EnableTracing:  cfg.Telemetry.EnableTracing,
			EnableMetrics:  cfg.Telemetry.EnableMetrics,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			logger.Error("failed to set up telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	meter := otel.GetMeterProvider().Meter(cfg.Service.Name)

	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	messagingMetrics, err := messaging.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create messaging metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := httpadapter.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	repo, idemStore, readiness, cleanupStorage, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up storage", "error", err)
		os.Exit(1)
	}
	defer cleanupStorage()

	publisher, cleanupPublisher, err := buildPublisher(cfg, logger)
	if err != nil {
		logger.Error("failed to set up event publisher", "error", err)
		os.Exit(1)
	}
	defer cleanupPublisher()

	stock := ordersmemory.NewStockStore(cfg.Stock.Levels)

	service := ordersapp.NewService(
		adapters.NewObservableRepository(repo, dbMetrics),
		adapters.NewObservableStockChecker(stock, orderMetrics),
		adapters.NewObservablePublisher(publisher, messagingMetrics),
		idemStore,
		logger,
		orderMetrics,
	)
	ordersHandler := httpadapter.NewHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := readiness(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.HandleFunc(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP\n"))
	})

	ordersHandler.Register(mux)

	handler := withRecovery(withLogging(httpadapter.WithMetrics(mux, httpMetrics)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting",
			"port", cfg.HTTP.Port,
			"storage", cfg.Storage.Backend,
			"events", cfg.Events.Backend,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

// buildStorage selects the order repository and idempotency store
// backend, returning a readiness probe and a cleanup function.
func buildStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (
	ports.OrderRepository,
	ports.IdempotencyStore,
	func(context.Context) error,
	func(),
	error,
) {
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		if cfg.Storage.Database.AutoMigrate {
			logger.Info("running database migrations", "path", cfg.Storage.Database.MigrationsPath)
			if err := database.RunMigrations(cfg.Storage.Database.URL, cfg.Storage.Database.MigrationsPath); err != nil {
				return nil, nil, nil, nil, err
			}
			logger.Info("migrations completed successfully")
		}

		pool, err := database.NewPool(ctx, cfg.Storage.Database.URL)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		readiness := func(ctx context.Context) error {
			return database.CheckHealth(ctx, pool)
		}
		return orderspostgres.NewRepository(pool), idempostgres.NewStore(pool), readiness, pool.Close, nil

	default:
		readiness := func(context.Context) error { return nil }
		return ordersmemory.NewRepository(), idemmemory.NewStore(), readiness, func() {}, nil
	}
}

// buildPublisher selects the domain event publisher backend.
func buildPublisher(cfg *config.Config, logger *slog.Logger) (ports.DomainEventPublisher, func(), error) {
	switch cfg.Events.Backend {
	case config.EventsBackendKafka:
		publisher := orderskafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		cleanup := func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka publisher", "error", err)
			}
		}
		return publisher, cleanup, nil

	default:
		return logpub.NewPublisher(logger), func() {}, nil
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		slog.InfoContext(r.Context(), "http request", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", time.Since(start))
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "error", rec)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
