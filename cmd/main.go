package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/offer-board/internal/clients/offers"
	"github.com/maxaizer/offer-board/internal/config"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/logger"
	"github.com/maxaizer/offer-board/internal/metrics"
	"github.com/maxaizer/offer-board/internal/services"
	"github.com/maxaizer/offer-board/internal/web"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	server    *web.Server
	refresher *services.StatsRefresher
}

func newApp(cfg *config.Config) (*app, error) {

	client := offers.NewClient(cfg.Backend.BaseURL)
	client.SetRateLimit(cfg.Backend.MaxRequestsPerSecond)

	bus := EventBus.New()

	submitter, err := form.NewSubmitter(client, bus)
	if err != nil {
		return nil, err
	}

	cachedStats := services.NewCachedStats(client, cfg.Dashboard.CacheTTL)
	stats, err := services.NewStatsService(cachedStats, cfg.Dashboard.NonFaangSalaryCap)
	if err != nil {
		return nil, err
	}

	refresher, err := services.NewStatsRefresher(stats, cachedStats, bus, cfg.Dashboard.RefreshSchedule)
	if err != nil {
		return nil, err
	}

	server, err := web.NewServer(cfg.Web, cfg.Logger.AppName, web.Dependencies{
		References: client,
		Submitter:  submitter,
		Dashboard:  stats,
	})
	if err != nil {
		refresher.Stop()
		return nil, err
	}

	return &app{server: server, refresher: refresher}, nil
}

func (a *app) stop(ctx context.Context) {
	if err := a.server.Shutdown(ctx); err != nil {
		log.Errorf("web server forced to shutdown: %v", err)
	}
	a.refresher.Stop()
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metricsServer := metrics.StartMetricsServer(cfg.Web.MetricsPort)

	application, err := newApp(cfg)
	if err != nil {
		log.Fatalf("can't create app: %v", err)
	}

	go func() {
		if err := application.server.Run(); err != nil {
			log.Errorf("web server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	application.stop(shutdownCtx)
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("metrics server forced to shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
