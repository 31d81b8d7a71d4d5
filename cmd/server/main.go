// Package main is the entry point for the DecisionLens dashboard backend.
// It serves trading-session status, the curated news feed and the sample
// watchlist, and refreshes sessions and news on a cron schedule.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/decisionlens/internal/config"
	"github.com/aristath/decisionlens/internal/events"
	"github.com/aristath/decisionlens/internal/modules/news"
	"github.com/aristath/decisionlens/internal/modules/sessions"
	"github.com/aristath/decisionlens/internal/modules/watchlist"
	"github.com/aristath/decisionlens/internal/scheduler"
	"github.com/aristath/decisionlens/internal/server"
	"github.com/aristath/decisionlens/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("display_mode", cfg.DisplayMode).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting DecisionLens")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("DecisionLens stopped with error")
	}

	log.Info().Msg("Server stopped")
}

// run wires every component and blocks until ctx is cancelled or a
// component fails
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Market table and profile are configuration; any problem here is fatal
	defs, err := sessions.LoadMarkets(cfg.MarketsFile)
	if err != nil {
		return err
	}
	profile, err := cfg.SessionProfile()
	if err != nil {
		return err
	}
	sessionService, err := sessions.NewSessionService(defs, profile, log)
	if err != nil {
		return err
	}
	log.Info().
		Int("markets", len(sessionService.Markets())).
		Str("profile", profile.Name).
		Msg("Session service initialized")

	source, err := newsSource(ctx, cfg.News)
	if err != nil {
		return err
	}
	feed := news.NewFeed(source, log)
	// A failed first load only means an empty feed
	_ = feed.Reload(ctx)

	eventManager := events.NewManager(events.NewBus(), log)

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.SessionRefreshSchedule, scheduler.NewSessionRefreshJob(sessionService, eventManager, log)); err != nil {
		return err
	}
	if err := sched.AddJob(cfg.NewsRefreshSchedule, scheduler.NewNewsReloadJob(feed, eventManager, log)); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Log:            log,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		AllowedOrigins: cfg.AllowedOrigins,
		NewsPageSize:   cfg.News.PageSize,
		Sessions:       sessionService,
		Feed:           feed,
		Watchlist:      watchlist.Sample(),
		EventManager:   eventManager,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		sched.Stop()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		return nil
	})

	return g.Wait()
}

// newsSource picks S3 when a bucket is configured, otherwise the local file
func newsSource(ctx context.Context, cfg config.NewsConfig) (news.Source, error) {
	if !cfg.UseS3() {
		return news.NewFileSource(cfg.File), nil
	}

	return news.NewS3Source(ctx, news.S3Config{
		Bucket:   cfg.S3Bucket,
		Key:      cfg.S3Key,
		Region:   cfg.AWSRegion,
		Endpoint: cfg.S3Endpoint,
	})
}
