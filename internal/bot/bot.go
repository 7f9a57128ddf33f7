package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tradeforge/crypto-signal-bot/internal/exchange"
	"github.com/tradeforge/crypto-signal-bot/internal/logger"
	"github.com/tradeforge/crypto-signal-bot/internal/monitoring"
	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
	"github.com/tradeforge/crypto-signal-bot/internal/state"
	"github.com/tradeforge/crypto-signal-bot/internal/strategy"
	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// TradingBot drives one symbol through a poll loop: fetch price, feed
// the strategy, execute any signal, then sweep exit thresholds.
type TradingBot struct {
	symbol   string
	interval time.Duration

	exchange exchange.Exchange
	strategy strategy.Strategy
	ledger   *portfolio.Ledger
	executor *TradeExecutor

	logger  *logger.Logger
	journal *state.TradeJournal
	metrics *monitoring.Metrics
	health  *monitoring.HealthChecker

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// NewTradingBot wires a bot around an already-constructed executor.
func NewTradingBot(symbol string, interval time.Duration, exch exchange.Exchange, strat strategy.Strategy, ledger *portfolio.Ledger, executor *TradeExecutor) *TradingBot {
	return &TradingBot{
		symbol:   symbol,
		interval: interval,
		exchange: exch,
		strategy: strat,
		ledger:   ledger,
		executor: executor,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithObservability attaches the optional logging and monitoring
// sinks.
func (b *TradingBot) WithObservability(log *logger.Logger, journal *state.TradeJournal, metrics *monitoring.Metrics, health *monitoring.HealthChecker) *TradingBot {
	b.logger = log
	b.journal = journal
	b.metrics = metrics
	b.health = health
	return b
}

// Start connects to the exchange and runs the poll loop until the
// context is cancelled or Stop is called.
func (b *TradingBot) Start(ctx context.Context) error {
	defer close(b.done)

	if err := b.exchange.Connect(ctx); err != nil {
		return fmt.Errorf("exchange connect failed: %w", err)
	}
	defer b.exchange.Disconnect()

	if b.health != nil {
		b.health.SetConnected(true)
		defer b.health.SetConnected(false)
	}
	if b.logger != nil {
		b.logger.Info("bot started: symbol=%s strategy=%s interval=%s dry_run=%v",
			b.symbol, b.strategy.GetName(), b.interval, b.executor.dryRun)
	}

	// Process one tick immediately so a long interval does not delay
	// the first observation.
	b.tick(ctx)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.stopChan:
			return nil
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

// Stop signals the poll loop to exit and waits for it to finish.
func (b *TradingBot) Stop() {
	b.stopOnce.Do(func() { close(b.stopChan) })
	<-b.done
}

func (b *TradingBot) tick(ctx context.Context) {
	ticker, err := b.exchange.GetMarketData(ctx, b.symbol)
	if err != nil {
		// Market data failure is recoverable: skip this tick.
		if b.logger != nil {
			b.logger.Warning("market data fetch failed: %v", err)
		}
		if b.metrics != nil {
			b.metrics.RecordError("market_data")
		}
		if b.health != nil {
			b.health.AddError(err.Error())
		}
		return
	}

	b.observePrice(ticker)

	signal := b.strategy.AddPriceData(types.PriceSample{
		Price:     ticker.Price,
		Timestamp: ticker.Timestamp,
	})

	if signal.Action != strategy.ActionHold {
		b.handleSignal(ctx, signal, ticker.Price)
	}

	if results := b.executor.CheckStopLossOrders(ctx); len(results) > 0 && b.logger != nil {
		for _, result := range results {
			if result.Executed {
				b.logger.Info("position closed: %s realized=$%.2f", result.Reason, result.RealizedPnL)
			}
		}
	}

	b.logStatus(ticker.Price)
}

func (b *TradingBot) observePrice(ticker *types.Ticker) {
	b.ledger.UpdatePrice(b.symbol, ticker.Price)
	if b.metrics != nil {
		b.metrics.UpdatePrice(b.symbol, ticker.Price)
		b.metrics.UpdatePortfolio(b.ledger.TotalValue(), b.ledger.AvailableBalance())
	}
	if b.health != nil {
		b.health.UpdatePrice(ticker.Price)
	}
}

func (b *TradingBot) handleSignal(ctx context.Context, signal strategy.TradingSignal, price float64) {
	if b.logger != nil {
		b.logger.LogSignal(b.strategy.GetName(), signal.Action.String(), signal.Confidence, price)
	}
	if b.metrics != nil {
		b.metrics.RecordSignal(b.strategy.GetName(), signal.Action.String(), signal.Confidence)
	}
	if b.journal != nil {
		if err := b.journal.LogSignal(b.symbol, b.strategy.GetName(), signal.Action.String(), signal.Confidence, price, signal.Timestamp); err != nil && b.logger != nil {
			b.logger.Error("journal write failed: %v", err)
		}
	}

	result, err := b.executor.ExecuteSignal(ctx, signal, price)
	if err != nil {
		if b.logger != nil {
			b.logger.Error("signal execution failed: %v", err)
		}
		if b.health != nil {
			b.health.AddError(err.Error())
		}
		return
	}
	if b.logger != nil && !result.Executed {
		b.logger.Info("signal not executed: %s", result.Reason)
	}
}

func (b *TradingBot) logStatus(price float64) {
	if b.logger == nil {
		return
	}
	b.logger.LogMarketStatus(price, b.ledger.AvailableBalance(), b.ledger.TotalValue(), b.ledger.TotalPnL(), b.ledger.OpenPositionCount())
}
