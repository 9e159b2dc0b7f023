package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"GoldSentinel/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fetch and check loops until interrupted",
	RunE:  runSession,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.HTTP.ListenAddr != "" {
		a.sched.Status = metrics.NewServer(cfg.HTTP.ListenAddr)
		go func() {
			if err := a.sched.Status.Run(ctx); err != nil {
				log.Error().Err(err).Msg("status server")
			}
		}()
	}

	if err := a.sched.RegisterAll(cfg.Schedule.FetchCron, cfg.Schedule.CheckCron); err != nil {
		return err
	}
	a.sched.Start()
	defer a.sched.Stop()

	if cfg.Schedule.WatchLog {
		go func() {
			if err := a.sched.WatchLog(ctx); err != nil {
				log.Error().Err(err).Msg("price log watcher")
			}
		}()
	}

	if a.telegram != nil {
		go a.telegram.StartPolling(ctx, a.sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	log.Info().Msg("GoldSentinel is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
	return nil
}
