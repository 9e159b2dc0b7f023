package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldSentinel/internal/config"
	"GoldSentinel/internal/model"
	"GoldSentinel/internal/strategy"
)

func TestApplyOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags([]string{"--cost", "560.5", "--no-trade", "01:00-02:00", "--dir", "/tmp/gold"}))

	cfg := &config.Config{}
	cfg.Position.Grams = 250
	applyOverrides(cmd, cfg)

	require.NotNil(t, cfg.Position.CostBasis)
	assert.Equal(t, 560.5, *cfg.Position.CostBasis)
	assert.Equal(t, "01:00-02:00", cfg.Strategy.NoTradeWindow)
	assert.Equal(t, "/tmp/gold", cfg.Data.Dir)
	assert.Equal(t, 250.0, cfg.Position.Grams, "unset flags leave the file value")
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug"))
	assert.Error(t, setupLogging("loud"))
}

func TestReplay(t *testing.T) {
	start := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	var history model.PriceHistory
	for i := 0; i < 21; i++ {
		history = append(history, model.PriceObservation{
			Time:  start.Add(time.Duration(i) * 5 * time.Minute),
			Price: 1000 + 5*float64(i),
		})
	}
	cfg := strategy.DefaultConfig(250)
	cost := 1000.0
	cfg.CostBasis = &cost

	var buf bytes.Buffer
	replay(&buf, strategy.NewEngine(cfg), history)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 21)
	assert.True(t, strings.HasSuffix(lines[14], "take-profit-2: sell remainder"))
	assert.True(t, strings.HasSuffix(lines[20], "| hold"))
}
