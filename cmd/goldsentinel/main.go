package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"GoldSentinel/internal/config"
)

var (
	flagConfig   string
	flagDir      string
	flagGrams    float64
	flagCost     float64
	flagNoTrade  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "goldsentinel",
	Short: "Sell-decision monitor for a physical gold position",
	Long: `GoldSentinel records gold quotes in CNY per gram and evaluates each new
tick against volatility-scaled stop-loss, take-profit and trailing-stop levels.

Examples:
  goldsentinel run --grams 250 --cost 560
  goldsentinel fetch --dir data
  goldsentinel check --replay`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(flagLogLevel)
	},
}

func init() {
	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	defaultLevel := "info"
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		defaultLevel = v
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", defaultConfig, "Path to YAML config file")
	pf.StringVar(&flagDir, "dir", "", "Price log directory (overrides data.dir)")
	pf.Float64Var(&flagGrams, "grams", 0, "Position size in grams")
	pf.Float64Var(&flagCost, "cost", 0, "Cost basis in CNY per gram")
	pf.StringVar(&flagNoTrade, "no-trade", "", "No-trade window HH:MM-HH:MM")
	pf.StringVar(&flagLogLevel, "log-level", defaultLevel, "Log level (debug|info|warn|error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("goldsentinel failed")
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().Timestamp().Logger()
	return nil
}

// loadConfig reads the config file and applies command-line overrides
// before validating.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	applyOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Data.Dir = flagDir
	}
	if flags.Changed("grams") {
		cfg.Position.Grams = flagGrams
	}
	if flags.Changed("cost") {
		cost := flagCost
		cfg.Position.CostBasis = &cost
	}
	if flags.Changed("no-trade") {
		cfg.Strategy.NoTradeWindow = flagNoTrade
	}
}
