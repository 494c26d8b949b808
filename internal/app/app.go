// Package app wires the seeder's dependencies and runs the job once.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/config"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/repository/platform"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/seeder"
	"github.com/fulfillmenttools/commercetools-sunrise-data/pkg/httpclient"
)

// App holds the wired job and its optional metrics listener.
type App struct {
	cfg           *config.Config
	logger        *slog.Logger
	seeder        *seeder.Seeder
	metricsServer *http.Server
}

// NewApp builds the dependency graph from cfg.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	client := httpclient.New(httpclient.Config{
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.HTTPMaxRetries,
	})

	var doer platform.Doer = client
	if cfg.BreakerEnabled {
		doer = httpclient.NewCircuitBreakerClient(
			client,
			httpclient.DefaultCircuitBreakerConfig("platform"),
			logger,
		)
	}

	platformClient := platform.NewClient(cfg.PlatformBaseURL, cfg.PlatformToken, doer, cfg.PageSize)

	var limiter *rate.Limiter
	if cfg.WriteRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.WriteRPS), 1)
	}

	job := seeder.New(
		platform.NewChannelRepository(platformClient),
		platform.NewProductRepository(platformClient),
		platform.NewInventoryRepository(platformClient),
		logger,
		seeder.Options{
			ChannelKeys:          cfg.ChannelKeys,
			ChannelLookupTimeout: cfg.ChannelLookupTimeout,
			SkipLimit:            cfg.SkipLimit,
			WriteLimiter:         limiter,
		},
	)

	app := &App{cfg: cfg, logger: logger, seeder: job}
	if cfg.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return app
}

// Run executes the seeding job once and tears the metrics listener down
// afterwards. It returns the job's error, not the listener's.
func (a *App) Run(ctx context.Context) error {
	if a.metricsServer != nil {
		go func() {
			a.logger.Info("metrics listener started", slog.String("addr", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Warn("metrics listener failed", slog.String("error", err.Error()))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = a.metricsServer.Shutdown(shutdownCtx)
		}()
	}

	result, err := a.seeder.Run(ctx)
	if err != nil {
		return fmt.Errorf("seeding run failed after %d created entries: %w", result.EntriesCreated, err)
	}
	return nil
}
