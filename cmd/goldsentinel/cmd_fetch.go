package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one quote and append it to the price log",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	obs, err := a.sched.FetchNow()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %.2f CNY/g\n", obs.Time.Format("2006-01-02 15:04:05"), obs.Aux, obs.Price)
	return nil
}
