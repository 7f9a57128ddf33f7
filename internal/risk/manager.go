package risk

import (
	"fmt"
	"time"

	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
)

// Limits is the process-wide risk configuration, read-only after
// construction. Percentage fields are expressed as whole percents
// (e.g. 20 means 20%).
type Limits struct {
	MaxPositionSize   float64
	MaxDailyLoss      float64
	StopLossPercent   float64
	TakeProfitPercent float64
	MaxOpenPositions  int
}

// Gate identifiers for rejections. These are stable, low-cardinality
// values intended for metric labels; Reason carries the full detail.
const (
	GateDailyLoss     = "daily_loss"
	GatePositionSize  = "position_size"
	GatePositionCount = "position_count"
	GateAffordability = "affordability"
)

// Assessment is the transient verdict for one candidate trade. When a
// trade is rejected for size, RecommendedSize carries a capped
// quantity the caller may retry with. Gate names the failing check.
type Assessment struct {
	Allowed         bool
	Gate            string
	Reason          string
	RecommendedSize float64
}

// PortfolioView is the read interface the manager needs from the ledger.
type PortfolioView interface {
	TotalValue() float64
	AvailableBalance() float64
	OpenPositionCount() int
}

// Manager applies the configured exposure limits to candidate trades.
// It carries the rolling daily realized P&L, reset lazily on the first
// assessment after local midnight.
type Manager struct {
	limits    Limits
	dailyPnL  float64
	dailyDate time.Time
	now       func() time.Time
}

// NewManager creates a risk manager with the given limits.
func NewManager(limits Limits) *Manager {
	m := &Manager{limits: limits, now: time.Now}
	m.dailyDate = dateOf(m.now())
	return m
}

// Limits returns the configured limits.
func (m *Manager) Limits() Limits {
	return m.limits
}

// RecordRealizedPnL adds a realized trade result to the daily counter.
func (m *Manager) RecordRealizedPnL(pnl float64) {
	m.rolloverDay()
	m.dailyPnL += pnl
}

// DailyPnL returns the realized P&L accumulated since the last
// midnight boundary.
func (m *Manager) DailyPnL() float64 {
	m.rolloverDay()
	return m.dailyPnL
}

// AssessTrade evaluates a candidate trade against the limits. The
// gates run in a fixed order and the first failing one short-circuits:
// daily loss, position size, open-position count, then affordability
// for buys. A rejection is an expected outcome, not an error.
func (m *Manager) AssessTrade(symbol string, side portfolio.Side, quantity, price float64, view PortfolioView) Assessment {
	m.rolloverDay()

	totalValue := view.TotalValue()

	if m.dailyPnL <= -(totalValue * m.limits.MaxDailyLoss / 100) {
		return Assessment{
			Allowed: false,
			Gate:    GateDailyLoss,
			Reason:  fmt.Sprintf("daily loss limit reached: %.2f", m.dailyPnL),
		}
	}

	if totalValue > 0 {
		notionalPct := quantity * price / totalValue * 100
		if notionalPct > m.limits.MaxPositionSize {
			return Assessment{
				Allowed:         false,
				Gate:            GatePositionSize,
				Reason:          fmt.Sprintf("position size %.1f%% exceeds limit %.1f%%", notionalPct, m.limits.MaxPositionSize),
				RecommendedSize: totalValue * m.limits.MaxPositionSize / 100 / price,
			}
		}
	}

	if view.OpenPositionCount() >= m.limits.MaxOpenPositions {
		return Assessment{
			Allowed: false,
			Gate:    GatePositionCount,
			Reason:  fmt.Sprintf("open position limit reached: %d", m.limits.MaxOpenPositions),
		}
	}

	if side == portfolio.SideBuy && view.AvailableBalance() < quantity*price*1.01 {
		return Assessment{
			Allowed: false,
			Gate:    GateAffordability,
			Reason:  fmt.Sprintf("insufficient balance for %.6f %s at %.2f", quantity, symbol, price),
		}
	}

	return Assessment{Allowed: true}
}

// CheckStopLoss reports whether the adverse move from entry to the
// current price meets or exceeds the stop-loss percentage. Pure
// predicate; the executor decides what to do with a true result.
func (m *Manager) CheckStopLoss(pos portfolio.Position) bool {
	if pos.AvgPrice == 0 {
		return false
	}
	var adverse float64
	if pos.Side == portfolio.PositionLong {
		adverse = (pos.AvgPrice - pos.CurrentPrice) / pos.AvgPrice * 100
	} else {
		adverse = (pos.CurrentPrice - pos.AvgPrice) / pos.AvgPrice * 100
	}
	return adverse >= m.limits.StopLossPercent
}

// CheckTakeProfit mirrors CheckStopLoss for favorable moves.
func (m *Manager) CheckTakeProfit(pos portfolio.Position) bool {
	if pos.AvgPrice == 0 {
		return false
	}
	var favorable float64
	if pos.Side == portfolio.PositionLong {
		favorable = (pos.CurrentPrice - pos.AvgPrice) / pos.AvgPrice * 100
	} else {
		favorable = (pos.AvgPrice - pos.CurrentPrice) / pos.AvgPrice * 100
	}
	return favorable >= m.limits.TakeProfitPercent
}

// rolloverDay zeroes the daily counter on the first call after local
// midnight. There is no timer.
func (m *Manager) rolloverDay() {
	today := dateOf(m.now())
	if !today.Equal(m.dailyDate) {
		m.dailyDate = today
		m.dailyPnL = 0
	}
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
