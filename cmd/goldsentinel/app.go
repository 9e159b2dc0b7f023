package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/config"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/pricelog"
	"GoldSentinel/internal/recorder"
	"GoldSentinel/internal/scheduler"
	"GoldSentinel/internal/strategy"
)

// app holds the wired components of one session.
type app struct {
	cfg      *config.Config
	sched    *scheduler.Scheduler
	telegram *notifier.TelegramNotifier
	rec      recorder.Recorder
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	ec, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}

	fetcher := collector.NewFallbackFetcher(
		collector.NewGoldAPIFetcher(cfg.Data.GoldAPIURL, cfg.Data.GoldAPIToken, cfg.Proxy),
		collector.NewSinaFetcher(cfg.Data.SinaURL, cfg.Proxy),
	)
	rates := collector.NewCachedRateProvider(
		collector.NewExchangeRateFetcher(cfg.Data.RateURL, cfg.Proxy),
		cfg.Data.RateTTL, cfg.Data.FallbackRate,
	)
	col := collector.NewCollector(fetcher, rates)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}

	a := &app{cfg: cfg, rec: rec}
	var sender scheduler.Sender
	if cfg.Telegram.BotToken != "" {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = a.telegram
	}

	a.sched = scheduler.NewScheduler(ctx, col, pricelog.New(cfg.Data.Dir), strategy.NewEngine(ec), sender, rec)

	log.Info().
		Str("session", a.sched.SessionID).
		Float64("grams", ec.Grams).
		Str("no_trade", ec.NoTrade.String()).
		Str("dir", cfg.Data.Dir).
		Msg("session configured")
	return a, nil
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		log.Error().Err(err).Msg("close recorder")
	}
}
