package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldSentinel/internal/strategy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.Position.Grams)
	assert.Nil(t, cfg.Position.CostBasis)
	assert.Equal(t, "02:00-09:10", cfg.Strategy.NoTradeWindow)
	assert.Equal(t, 5, cfg.Strategy.MAShort)
	assert.Equal(t, 20, cfg.Strategy.MALong)
	assert.Equal(t, strategy.DefaultMultipliers(), cfg.Strategy.Multipliers)
	assert.Equal(t, 30*time.Minute, cfg.Data.RateTTL)
	assert.Equal(t, 7.2, cfg.Data.FallbackRate)
	assert.Equal(t, "@every 5s", cfg.Schedule.CheckCron)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
position:
  grams: 100
  cost_basis: 610.5
strategy:
  no_trade_window: "22:00-06:00"
  multipliers:
    stop: 4
data:
  rate_ttl: 10m
`)
	t.Setenv("POSITION_GRAMS", "80")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 80.0, cfg.Position.Grams)
	require.NotNil(t, cfg.Position.CostBasis)
	assert.Equal(t, 610.5, *cfg.Position.CostBasis)
	assert.Equal(t, "22:00-06:00", cfg.Strategy.NoTradeWindow)
	assert.Equal(t, 4.0, cfg.Strategy.Multipliers.Stop)
	assert.Equal(t, 2.0, cfg.Strategy.Multipliers.TakeProfit1)
	assert.Equal(t, 10*time.Minute, cfg.Data.RateTTL)
	assert.Equal(t, "token", cfg.Telegram.BotToken)
	require.NoError(t, cfg.Validate())

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 80.0, ec.Grams)
	assert.Equal(t, "22:00-06:00", ec.NoTrade.String())
	assert.Equal(t, 4.0, ec.Multipliers.Stop)
}

func TestLoad_BadEnvNumber(t *testing.T) {
	t.Setenv("POSITION_COST", "abc")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsMalformedWindow(t *testing.T) {
	cfg, err := Load(writeConfig(t, "strategy:\n  no_trade_window: \"22:00to06:00\"\n"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, strategy.ErrInvalidWindow)

	_, err = cfg.EngineConfig()
	assert.ErrorIs(t, err, strategy.ErrInvalidWindow)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Position.Grams = -1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Strategy.MAShort = 30
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Telegram.BotToken = "only-token"
	assert.Error(t, cfg.Validate())

	cfg = base()
	zero := 0.0
	cfg.Position.CostBasis = &zero
	assert.Error(t, cfg.Validate())
}
