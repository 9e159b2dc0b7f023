package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"GoldSentinel/internal/model"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/pricelog"
	"GoldSentinel/internal/strategy"
)

var checkReplay bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate the latest price log once and print the decision",
	Long: `Evaluate the newest day file in the price log directory.

With --replay every tick of the file is fed to a fresh engine in order,
printing one decision per tick as a live session would have seen them.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkReplay, "replay", false, "Replay every tick of the latest log")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if checkReplay {
		ec, err := cfg.EngineConfig()
		if err != nil {
			return err
		}
		history, err := pricelog.New(cfg.Data.Dir).Latest()
		if err != nil {
			return err
		}
		replay(out, strategy.NewEngine(ec), history)
		return nil
	}

	a, err := newApp(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.sched.CheckNow()
	if err != nil {
		return err
	}
	if d == nil {
		fmt.Fprintln(out, "no price data")
		return nil
	}
	fmt.Fprintln(out, notifier.FormatDecision(d))
	return nil
}

// replay feeds growing prefixes of history to eng.
func replay(w io.Writer, eng *strategy.Engine, history model.PriceHistory) {
	for i := range history {
		if d, ok := eng.Process(history[:i+1]); ok {
			fmt.Fprintln(w, notifier.FormatDecision(d))
		}
	}
}
