package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"GoldSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Position struct {
		Grams     float64  `yaml:"grams"`
		CostBasis *float64 `yaml:"cost_basis"` // CNY/g, optional
	} `yaml:"position"`
	Strategy struct {
		NoTradeWindow string               `yaml:"no_trade_window"`
		MAShort       int                  `yaml:"ma_short"`
		MALong        int                  `yaml:"ma_long"`
		Multipliers   strategy.Multipliers `yaml:"multipliers"`
	} `yaml:"strategy"`
	Data struct {
		Dir          string        `yaml:"dir"`
		GoldAPIURL   string        `yaml:"gold_api_url"`
		GoldAPIToken string        `yaml:"gold_api_token"`
		SinaURL      string        `yaml:"sina_url"`
		RateURL      string        `yaml:"rate_url"`
		RateTTL      time.Duration `yaml:"rate_ttl"`
		FallbackRate float64       `yaml:"fallback_rate"`
	} `yaml:"data"`
	Schedule struct {
		FetchCron string `yaml:"fetch_cron"`
		CheckCron string `yaml:"check_cron"`
		WatchLog  bool   `yaml:"watch_log"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, loads a .env file if present, then
// applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("GOLD_API_TOKEN"); v != "" {
		c.Data.GoldAPIToken = v
	}
	if v := os.Getenv("GOLD_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("NO_TRADE_WINDOW"); v != "" {
		c.Strategy.NoTradeWindow = v
	}
	if v := os.Getenv("POSITION_GRAMS"); v != "" {
		grams, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse POSITION_GRAMS: %w", err)
		}
		c.Position.Grams = grams
	}
	if v := os.Getenv("POSITION_COST"); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse POSITION_COST: %w", err)
		}
		c.Position.CostBasis = &cost
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.HTTP.ListenAddr = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Position.Grams == 0 {
		c.Position.Grams = 250
	}
	if c.Strategy.NoTradeWindow == "" {
		c.Strategy.NoTradeWindow = "02:00-09:10"
	}
	if c.Strategy.MAShort == 0 {
		c.Strategy.MAShort = 5
	}
	if c.Strategy.MALong == 0 {
		c.Strategy.MALong = 20
	}
	def := strategy.DefaultMultipliers()
	m := &c.Strategy.Multipliers
	if m.Stop == 0 {
		m.Stop = def.Stop
	}
	if m.TakeProfit1 == 0 {
		m.TakeProfit1 = def.TakeProfit1
	}
	if m.TakeProfit2 == 0 {
		m.TakeProfit2 = def.TakeProfit2
	}
	if m.TrailingStop == 0 {
		m.TrailingStop = def.TrailingStop
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.GoldAPIURL == "" {
		c.Data.GoldAPIURL = "https://api.gold-api.com"
	}
	if c.Data.GoldAPIToken == "" {
		c.Data.GoldAPIToken = "demo"
	}
	if c.Data.SinaURL == "" {
		c.Data.SinaURL = "https://hq.sinajs.cn"
	}
	if c.Data.RateURL == "" {
		c.Data.RateURL = "https://api.exchangerate-api.com"
	}
	if c.Data.RateTTL == 0 {
		c.Data.RateTTL = 30 * time.Minute
	}
	if c.Data.FallbackRate == 0 {
		c.Data.FallbackRate = 7.2
	}
	if c.Schedule.FetchCron == "" {
		c.Schedule.FetchCron = "0 */5 * * * *"
	}
	if c.Schedule.CheckCron == "" {
		c.Schedule.CheckCron = "@every 5s"
	}
}

// Validate checks the configuration before a session starts.
// A malformed no-trade window is always fatal.
func (c *Config) Validate() error {
	if _, err := strategy.ParseWindow(c.Strategy.NoTradeWindow); err != nil {
		return fmt.Errorf("strategy.no_trade_window: %w", err)
	}
	if c.Position.Grams <= 0 {
		return fmt.Errorf("position.grams must be positive")
	}
	if c.Position.CostBasis != nil && *c.Position.CostBasis <= 0 {
		return fmt.Errorf("position.cost_basis must be positive")
	}
	if c.Strategy.MAShort <= 0 || c.Strategy.MALong <= 0 {
		return fmt.Errorf("strategy.ma_short and strategy.ma_long must be positive")
	}
	if c.Strategy.MAShort >= c.Strategy.MALong {
		return fmt.Errorf("strategy.ma_short must be shorter than strategy.ma_long")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// EngineConfig builds the decision engine configuration.
func (c *Config) EngineConfig() (strategy.Config, error) {
	w, err := strategy.ParseWindow(c.Strategy.NoTradeWindow)
	if err != nil {
		return strategy.Config{}, err
	}
	ec := strategy.DefaultConfig(c.Position.Grams)
	ec.CostBasis = c.Position.CostBasis
	ec.NoTrade = w
	ec.Params.MAShort = c.Strategy.MAShort
	ec.Params.MALong = c.Strategy.MALong
	ec.Multipliers = c.Strategy.Multipliers
	return ec, nil
}
