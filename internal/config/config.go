package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings, loaded from environment variables.
type Config struct {
	Environment string
	LogDir      string

	Exchange ExchangeConfig
	Strategy StrategyConfig
	Risk     RiskConfig
	Trading  TradingConfig

	Monitoring MonitoringConfig
}

type ExchangeConfig struct {
	Name     string
	APIKey   string
	Secret   string
	Category string
	Testnet  bool
	Demo     bool
}

type StrategyConfig struct {
	Name string

	// SMA crossover
	FastPeriod int
	SlowPeriod int

	// RSI threshold
	RSIPeriod  int
	Oversold   float64
	Overbought float64
}

type RiskConfig struct {
	MaxPositionSize   float64
	MaxDailyLoss      float64
	MaxOpenPositions  int
	StopLossPercent   float64
	TakeProfitPercent float64
}

type TradingConfig struct {
	Symbol         string
	DryRun         bool
	InitialBalance float64
	Interval       time.Duration
	JournalPath    string
	ExportPath     string
}

type MonitoringConfig struct {
	Enabled        bool
	PrometheusPort int
	HealthPort     int
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Environment: getEnv("ENV", "development"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		Exchange: ExchangeConfig{
			Name:     getEnv("EXCHANGE_NAME", "simulated"),
			APIKey:   getEnv("EXCHANGE_API_KEY", ""),
			Secret:   getEnv("EXCHANGE_SECRET", ""),
			Category: getEnv("EXCHANGE_CATEGORY", "spot"),
			Testnet:  getEnvBool("EXCHANGE_TESTNET", true),
			Demo:     getEnvBool("EXCHANGE_DEMO", false),
		},

		Strategy: StrategyConfig{
			Name:       getEnv("STRATEGY_NAME", "SMA_CROSSOVER"),
			FastPeriod: getEnvInt("STRATEGY_FAST_PERIOD", 10),
			SlowPeriod: getEnvInt("STRATEGY_SLOW_PERIOD", 30),
			RSIPeriod:  getEnvInt("STRATEGY_RSI_PERIOD", 14),
			Oversold:   getEnvFloat("STRATEGY_RSI_OVERSOLD", 30.0),
			Overbought: getEnvFloat("STRATEGY_RSI_OVERBOUGHT", 70.0),
		},

		Risk: RiskConfig{
			MaxPositionSize:   getEnvFloat("RISK_MAX_POSITION_SIZE", 20.0),
			MaxDailyLoss:      getEnvFloat("RISK_MAX_DAILY_LOSS", 5.0),
			MaxOpenPositions:  getEnvInt("RISK_MAX_OPEN_POSITIONS", 3),
			StopLossPercent:   getEnvFloat("RISK_STOP_LOSS_PERCENT", 3.0),
			TakeProfitPercent: getEnvFloat("RISK_TAKE_PROFIT_PERCENT", 6.0),
		},

		Trading: TradingConfig{
			Symbol:         getEnv("TRADING_SYMBOL", "BTCUSDT"),
			DryRun:         getEnvBool("TRADING_DRY_RUN", true),
			InitialBalance: getEnvFloat("TRADING_INITIAL_BALANCE", 10000.0),
			Interval:       getEnvDuration("TRADING_INTERVAL", time.Minute),
			JournalPath:    getEnv("TRADING_JOURNAL_PATH", "data/trades.jsonl"),
			ExportPath:     getEnv("TRADING_EXPORT_PATH", ""),
		},

		Monitoring: MonitoringConfig{
			Enabled:        getEnvBool("MONITORING_ENABLED", true),
			PrometheusPort: getEnvInt("PROMETHEUS_PORT", 8080),
			HealthPort:     getEnvInt("HEALTH_PORT", 8081),
		},
	}
}

// Validate checks the loaded configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Trading.Symbol == "" {
		return fmt.Errorf("trading symbol is required")
	}
	if c.Trading.InitialBalance <= 0 {
		return fmt.Errorf("initial balance must be positive, got %.2f", c.Trading.InitialBalance)
	}
	if c.Trading.Interval <= 0 {
		return fmt.Errorf("trading interval must be positive")
	}

	switch strings.ToUpper(c.Strategy.Name) {
	case "SMA_CROSSOVER":
		if c.Strategy.FastPeriod <= 0 || c.Strategy.SlowPeriod <= 0 {
			return fmt.Errorf("SMA periods must be positive")
		}
		if c.Strategy.FastPeriod >= c.Strategy.SlowPeriod {
			return fmt.Errorf("fast period %d must be less than slow period %d",
				c.Strategy.FastPeriod, c.Strategy.SlowPeriod)
		}
	case "RSI_THRESHOLD":
		if c.Strategy.RSIPeriod <= 0 {
			return fmt.Errorf("RSI period must be positive")
		}
		if c.Strategy.Oversold >= c.Strategy.Overbought {
			return fmt.Errorf("oversold level %.1f must be below overbought level %.1f",
				c.Strategy.Oversold, c.Strategy.Overbought)
		}
	default:
		return fmt.Errorf("unknown strategy: %s", c.Strategy.Name)
	}

	if c.Risk.MaxPositionSize <= 0 || c.Risk.MaxPositionSize > 100 {
		return fmt.Errorf("max position size must be in (0, 100], got %.1f", c.Risk.MaxPositionSize)
	}
	if c.Risk.MaxDailyLoss <= 0 {
		return fmt.Errorf("max daily loss must be positive")
	}
	if c.Risk.MaxOpenPositions <= 0 {
		return fmt.Errorf("max open positions must be positive")
	}

	if !c.Trading.DryRun && c.Exchange.Name == "simulated" {
		return fmt.Errorf("live trading requires a real exchange, got %q", c.Exchange.Name)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
