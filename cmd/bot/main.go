package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradeforge/crypto-signal-bot/internal/bot"
	"github.com/tradeforge/crypto-signal-bot/internal/config"
	"github.com/tradeforge/crypto-signal-bot/internal/exchange"
	"github.com/tradeforge/crypto-signal-bot/internal/logger"
	"github.com/tradeforge/crypto-signal-bot/internal/monitoring"
	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
	"github.com/tradeforge/crypto-signal-bot/internal/risk"
	"github.com/tradeforge/crypto-signal-bot/internal/state"
	"github.com/tradeforge/crypto-signal-bot/internal/strategy"
	"github.com/tradeforge/crypto-signal-bot/pkg/reporting"
)

func main() {
	var (
		envFile  = flag.String("env", ".env", "Environment file path")
		symbol   = flag.String("symbol", "", "Trading symbol - overrides config")
		exchName = flag.String("exchange", "", "Exchange name (simulated, bybit) - overrides config")
		export   = flag.String("export", "", "Write trade history to this xlsx path on shutdown")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: could not load %s (%v), using environment variables", *envFile, err)
	}

	fmt.Println("🚀 Signal Bot Starting...")

	cfg := config.Load()
	if *symbol != "" {
		cfg.Trading.Symbol = strings.ToUpper(*symbol)
	}
	if *exchName != "" {
		cfg.Exchange.Name = *exchName
	}
	if *export != "" {
		cfg.Trading.ExportPath = *export
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	strat, err := buildStrategy(cfg)
	if err != nil {
		log.Fatalf("Failed to build strategy: %v", err)
	}

	exch, err := exchange.NewExchange(exchange.FactoryConfig{
		Name:      cfg.Exchange.Name,
		APIKey:    cfg.Exchange.APIKey,
		APISecret: cfg.Exchange.Secret,
		Category:  cfg.Exchange.Category,
		Testnet:   cfg.Exchange.Testnet,
		Demo:      cfg.Exchange.Demo,
	})
	if err != nil {
		log.Fatalf("Failed to create exchange: %v", err)
	}

	fileLog, err := logger.NewLogger(cfg.LogDir, cfg.Trading.Symbol)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer fileLog.Close()

	journal, err := state.NewTradeJournal(cfg.Trading.JournalPath)
	if err != nil {
		log.Fatalf("Failed to open trade journal: %v", err)
	}
	defer journal.Close()

	ledger := portfolio.NewLedger(cfg.Trading.InitialBalance)
	riskMgr := risk.NewManager(risk.Limits{
		MaxPositionSize:   cfg.Risk.MaxPositionSize,
		MaxDailyLoss:      cfg.Risk.MaxDailyLoss,
		MaxOpenPositions:  cfg.Risk.MaxOpenPositions,
		StopLossPercent:   cfg.Risk.StopLossPercent,
		TakeProfitPercent: cfg.Risk.TakeProfitPercent,
	})

	var metrics *monitoring.Metrics
	health := monitoring.NewHealthChecker()
	if cfg.Monitoring.Enabled {
		metrics = monitoring.NewMetrics(nil)
		startMonitoringServers(cfg, health)
	}

	executor := bot.NewTradeExecutor(cfg.Trading.Symbol, cfg.Trading.DryRun, ledger, riskMgr, exch).
		WithObservability(fileLog, journal, metrics, health)
	tradingBot := bot.NewTradingBot(cfg.Trading.Symbol, cfg.Trading.Interval, exch, strat, ledger, executor).
		WithObservability(fileLog, journal, metrics, health)

	console := reporting.NewConsoleReporter()
	console.PrintStartupInfo(cfg.Trading.Symbol, strat.GetName(), exch.GetName(),
		cfg.Trading.DryRun, cfg.Trading.Interval, cfg.Trading.InitialBalance)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- tradingBot.Start(ctx) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		fmt.Printf("\n🛑 Received %s, shutting down...\n", sig)
		tradingBot.Stop()
		<-errCh
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.Printf("Bot stopped with error: %v", err)
		}
	}

	printShutdownReport(console, ledger, journal, cfg.Trading.ExportPath)
	fmt.Println("👋 Goodbye!")
}

func buildStrategy(cfg *config.Config) (strategy.Strategy, error) {
	switch strings.ToUpper(cfg.Strategy.Name) {
	case "SMA_CROSSOVER":
		return strategy.NewSMACrossover(cfg.Strategy.FastPeriod, cfg.Strategy.SlowPeriod), nil
	case "RSI_THRESHOLD":
		return strategy.NewRSIThreshold(cfg.Strategy.RSIPeriod, cfg.Strategy.Oversold, cfg.Strategy.Overbought), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", cfg.Strategy.Name)
	}
}

func startMonitoringServers(cfg *config.Config, health *monitoring.HealthChecker) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", monitoring.MetricsHandler())
		addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
		server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/health", health)
		addr := fmt.Sprintf(":%d", cfg.Monitoring.HealthPort)
		server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()
}

func printShutdownReport(console *reporting.ConsoleReporter, ledger *portfolio.Ledger, journal *state.TradeJournal, exportPath string) {
	console.PrintPortfolioSummary(ledger.GetSummary())
	console.PrintPositions(ledger.Positions())
	console.PrintDailyStats(journal.AllDailyStats())

	if exportPath == "" {
		return
	}
	excel := reporting.NewExcelReporter()
	if err := excel.WriteTradesXLSX(ledger.Trades(), ledger.GetSummary(), exportPath); err != nil {
		log.Printf("Failed to export trades: %v", err)
		return
	}
	fmt.Printf("📄 Trade history exported to %s\n", exportPath)
}
