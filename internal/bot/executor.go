package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/tradeforge/crypto-signal-bot/internal/exchange"
	"github.com/tradeforge/crypto-signal-bot/internal/logger"
	"github.com/tradeforge/crypto-signal-bot/internal/monitoring"
	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
	"github.com/tradeforge/crypto-signal-bot/internal/risk"
	"github.com/tradeforge/crypto-signal-bot/internal/state"
	"github.com/tradeforge/crypto-signal-bot/internal/strategy"
)

const (
	// baseTradeFraction is the share of available balance a trade
	// starts from before confidence scaling.
	baseTradeFraction = 0.10

	// feeRate is the flat fee applied to every fill.
	feeRate = 0.001

	// Exit reasons recorded on synthesized closing trades.
	ReasonSignal     = "SIGNAL"
	ReasonStopLoss   = "STOP_LOSS"
	ReasonTakeProfit = "TAKE_PROFIT"
)

// ExecutionResult reports what ExecuteSignal did with a signal.
type ExecutionResult struct {
	Executed    bool
	Reason      string
	Trade       *portfolio.Trade
	RealizedPnL float64
}

// TradeExecutor turns strategy signals into sized, risk-checked
// trades and applies their fills to the ledger. In dry-run mode fills
// are simulated locally at the signal price; otherwise orders are
// routed to the exchange and only filled orders touch the ledger.
type TradeExecutor struct {
	symbol   string
	dryRun   bool
	ledger   *portfolio.Ledger
	risk     *risk.Manager
	exchange exchange.Exchange

	logger  *logger.Logger
	journal *state.TradeJournal
	metrics *monitoring.Metrics
	health  *monitoring.HealthChecker

	orderSeq int64
}

// NewTradeExecutor creates an executor. Logger, journal, metrics and
// health are optional and may be nil.
func NewTradeExecutor(symbol string, dryRun bool, ledger *portfolio.Ledger, riskMgr *risk.Manager, exch exchange.Exchange) *TradeExecutor {
	return &TradeExecutor{
		symbol:   symbol,
		dryRun:   dryRun,
		ledger:   ledger,
		risk:     riskMgr,
		exchange: exch,
	}
}

// WithObservability attaches the optional logging and monitoring
// sinks.
func (e *TradeExecutor) WithObservability(log *logger.Logger, journal *state.TradeJournal, metrics *monitoring.Metrics, health *monitoring.HealthChecker) *TradeExecutor {
	e.logger = log
	e.journal = journal
	e.metrics = metrics
	e.health = health
	return e
}

// ExecuteSignal sizes, risk-checks and executes one strategy signal
// at the given market price.
func (e *TradeExecutor) ExecuteSignal(ctx context.Context, signal strategy.TradingSignal, price float64) (*ExecutionResult, error) {
	if signal.Action == strategy.ActionHold {
		return &ExecutionResult{Reason: "No action required"}, nil
	}
	return e.executeSignal(ctx, signal, price, ReasonSignal)
}

func (e *TradeExecutor) executeSignal(ctx context.Context, signal strategy.TradingSignal, price float64, reason string) (*ExecutionResult, error) {
	if price <= 0 {
		return nil, fmt.Errorf("invalid price %.4f for %s", price, e.symbol)
	}

	side := portfolio.SideBuy
	if signal.Action == strategy.ActionSell {
		side = portfolio.SideSell
	}

	quantity := e.positionSize(signal.Confidence, price)
	if quantity <= 0 {
		return &ExecutionResult{Reason: "Computed size is zero"}, nil
	}

	assessment := e.risk.AssessTrade(e.symbol, side, quantity, price, e.ledger)
	if !assessment.Allowed && assessment.RecommendedSize > 0 {
		// Retry once at the size the risk manager would accept.
		quantity = assessment.RecommendedSize
		assessment = e.risk.AssessTrade(e.symbol, side, quantity, price, e.ledger)
	}
	if !assessment.Allowed {
		e.recordRejection(side, quantity, price, assessment)
		return &ExecutionResult{Reason: assessment.Reason}, nil
	}

	trade := portfolio.Trade{
		ID:        e.nextOrderID(),
		Symbol:    e.symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Fee:       quantity * price * feeRate,
		Timestamp: signal.Timestamp,
	}
	if trade.Timestamp == 0 {
		trade.Timestamp = time.Now().UnixMilli()
	}

	if !e.dryRun {
		order, err := e.exchange.PlaceOrder(ctx, exchange.OrderRequest{
			Symbol:   e.symbol,
			Side:     exchange.OrderSide(side),
			Type:     exchange.OrderTypeMarket,
			Quantity: quantity,
		})
		if err != nil {
			e.recordError("executor")
			return nil, fmt.Errorf("order placement failed: %w", err)
		}
		if order.Status != exchange.OrderStatusFilled {
			return &ExecutionResult{Reason: fmt.Sprintf("Order %s not filled (status %s)", order.ID, order.Status)}, nil
		}
		trade.ID = order.ID
		if order.Price > 0 {
			trade.Price = order.Price
			trade.Fee = trade.Quantity * trade.Price * feeRate
		}
	}

	realized := e.ledger.AddTrade(trade)
	e.risk.RecordRealizedPnL(realized)
	e.recordTrade(trade, realized, reason)

	return &ExecutionResult{
		Executed:    true,
		Reason:      reason,
		Trade:       &trade,
		RealizedPnL: realized,
	}, nil
}

// CheckStopLossOrders sweeps open positions and closes any whose
// unrealized loss or gain has crossed the configured exit thresholds.
func (e *TradeExecutor) CheckStopLossOrders(ctx context.Context) []*ExecutionResult {
	var results []*ExecutionResult

	for _, pos := range e.ledger.Positions() {
		// The executor trades a single instrument; a position in any
		// other symbol cannot be closed by trading e.symbol.
		if pos.Symbol != e.symbol {
			continue
		}

		var reason string
		switch {
		case e.risk.CheckStopLoss(pos):
			reason = ReasonStopLoss
		case e.risk.CheckTakeProfit(pos):
			reason = ReasonTakeProfit
		default:
			continue
		}

		action := strategy.ActionSell
		if pos.Side == portfolio.PositionShort {
			action = strategy.ActionBuy
		}
		signal := strategy.TradingSignal{
			Action:     action,
			Confidence: 1.0,
			Timestamp:  time.Now().UnixMilli(),
		}

		result, err := e.executeSignal(ctx, signal, pos.CurrentPrice, reason)
		if err != nil {
			e.recordError("executor")
			if e.logger != nil {
				e.logger.Error("failed to close %s position: %v", pos.Symbol, err)
			}
			continue
		}
		results = append(results, result)
	}

	return results
}

// positionSize computes the trade quantity: 10% of available balance,
// scaled between 50% and 100% by the signal confidence.
func (e *TradeExecutor) positionSize(confidence float64, price float64) float64 {
	notional := e.ledger.AvailableBalance() * baseTradeFraction * (0.5 + confidence*0.5)
	return notional / price
}

func (e *TradeExecutor) nextOrderID() string {
	e.orderSeq++
	return fmt.Sprintf("sim-%d-%d", time.Now().UnixMilli(), e.orderSeq)
}

func (e *TradeExecutor) recordTrade(trade portfolio.Trade, realized float64, reason string) {
	if e.logger != nil {
		e.logger.LogTradeExecution(trade.ID, string(trade.Side), trade.Quantity, trade.Price, trade.Fee, reason)
	}
	if e.journal != nil {
		if err := e.journal.LogTrade(trade, realized, reason); err != nil && e.logger != nil {
			e.logger.Error("journal write failed: %v", err)
		}
	}
	if e.metrics != nil {
		e.metrics.RecordTrade(trade.Symbol, string(trade.Side), reason, trade.Quantity*trade.Price)
		e.metrics.UpdatePortfolio(e.ledger.TotalValue(), e.ledger.AvailableBalance())
	}
	if e.health != nil {
		e.health.UpdateLastTrade()
	}
}

func (e *TradeExecutor) recordRejection(side portfolio.Side, quantity, price float64, assessment risk.Assessment) {
	if e.logger != nil {
		e.logger.LogRejection(string(side), quantity, price, assessment.Reason)
	}
	if e.metrics != nil {
		// The gate identifier is bounded; the formatted reason is not,
		// so it stays out of the metric labels.
		e.metrics.RecordRejection(e.symbol, assessment.Gate)
	}
}

func (e *TradeExecutor) recordError(component string) {
	if e.metrics != nil {
		e.metrics.RecordError(component)
	}
}
