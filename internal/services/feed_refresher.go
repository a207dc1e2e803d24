package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FeedLoader loads the post feed. A cached feed is reused until its TTL expires.
type FeedLoader interface {
	Load(ctx context.Context) error
}

// RefresherConfig controls how often the feed is reloaded.
type RefresherConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// FeedRefresher reloads the post feed on a schedule so that an earlier
// failure heals without a manual retry.
type FeedRefresher struct {
	feed   FeedLoader
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RefresherConfig
}

func NewFeedRefresher(feed FeedLoader, logger *zap.Logger, cfg RefresherConfig) (*FeedRefresher, error) {
	if cfg.Interval < time.Second {
		return nil, fmt.Errorf("refresh interval must be at least 1s, got %s", cfg.Interval)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &FeedRefresher{
		feed:   feed,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := r.cron.AddFunc(schedule, r.tick); err != nil {
		return nil, fmt.Errorf("schedule feed refresh: %w", err)
	}
	return r, nil
}

func (r *FeedRefresher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("scheduled feed refresh failed", zap.Error(err))
	}
}

// Refresh loads the feed once.
func (r *FeedRefresher) Refresh(ctx context.Context) error {
	start := time.Now()
	if err := r.feed.Load(ctx); err != nil {
		return err
	}
	r.logger.Debug("feed refreshed", zap.Duration("took", time.Since(start)))
	return nil
}

func (r *FeedRefresher) Start() {
	r.cron.Start()
	r.logger.Info("feed refresher started", zap.Duration("interval", r.cfg.Interval))
}

// Stop halts the scheduler and waits for a running refresh, bounded by ctx.
func (r *FeedRefresher) Stop(ctx context.Context) error {
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
		r.logger.Info("feed refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
