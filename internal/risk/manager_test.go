package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
)

type stubView struct {
	totalValue float64
	balance    float64
	openCount  int
}

func (v stubView) TotalValue() float64       { return v.totalValue }
func (v stubView) AvailableBalance() float64 { return v.balance }
func (v stubView) OpenPositionCount() int    { return v.openCount }

func defaultLimits() Limits {
	return Limits{
		MaxPositionSize:   20,
		MaxDailyLoss:      5,
		StopLossPercent:   3,
		TakeProfitPercent: 6,
		MaxOpenPositions:  3,
	}
}

func TestAssessTrade_Allowed(t *testing.T) {
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 1000}

	a := m.AssessTrade("BTCUSDT", portfolio.SideBuy, 1, 100, view)
	assert.True(t, a.Allowed)
	assert.Empty(t, a.Reason)
}

func TestAssessTrade_PositionSizeGateWithRecommendedSize(t *testing.T) {
	// Initial balance 1000, maxPositionSize 20%, price 100: a 3-unit buy
	// is 30% notional and must be rejected with a 2.0-unit recommendation.
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 1000}

	a := m.AssessTrade("BTCUSDT", portfolio.SideBuy, 3, 100, view)
	require.False(t, a.Allowed)
	assert.Contains(t, a.Reason, "position size")
	assert.InDelta(t, 2.0, a.RecommendedSize, 1e-9)

	// The recommended size passes the same check.
	retry := m.AssessTrade("BTCUSDT", portfolio.SideBuy, a.RecommendedSize, 100, view)
	assert.True(t, retry.Allowed)
}

func TestAssessTrade_DailyLossGate(t *testing.T) {
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 1000}

	m.RecordRealizedPnL(-60) // limit is 5% of 1000 = 50

	a := m.AssessTrade("BTCUSDT", portfolio.SideBuy, 0.5, 100, view)
	require.False(t, a.Allowed)
	assert.Contains(t, a.Reason, "daily loss")
}

func TestAssessTrade_DailyLossResetsAfterMidnight(t *testing.T) {
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 1000}

	current := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }
	m.dailyDate = dateOf(current)

	m.RecordRealizedPnL(-60)
	require.False(t, m.AssessTrade("BTCUSDT", portfolio.SideBuy, 0.5, 100, view).Allowed)

	current = current.Add(2 * time.Hour) // past local midnight
	a := m.AssessTrade("BTCUSDT", portfolio.SideBuy, 0.5, 100, view)
	assert.True(t, a.Allowed)
	assert.Equal(t, 0.0, m.DailyPnL())
}

func TestAssessTrade_OpenPositionCountGate(t *testing.T) {
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 1000, openCount: 3}

	a := m.AssessTrade("ETHUSDT", portfolio.SideBuy, 0.5, 100, view)
	require.False(t, a.Allowed)
	assert.Contains(t, a.Reason, "open position limit")
}

func TestAssessTrade_AffordabilityGateBuyOnly(t *testing.T) {
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 100}

	// 1.5 * 100 = 150 notional (15%, within size limit) but balance is 100.
	buy := m.AssessTrade("BTCUSDT", portfolio.SideBuy, 1.5, 100, view)
	require.False(t, buy.Allowed)
	assert.Contains(t, buy.Reason, "insufficient balance")

	// Sells do not need free balance.
	sellA := m.AssessTrade("BTCUSDT", portfolio.SideSell, 1.5, 100, view)
	assert.True(t, sellA.Allowed)
}

func TestAssessTrade_GateOrder(t *testing.T) {
	// Daily loss must short-circuit before the size gate, so no
	// recommended size is produced.
	m := NewManager(defaultLimits())
	view := stubView{totalValue: 1000, balance: 1000}
	m.RecordRealizedPnL(-60)

	a := m.AssessTrade("BTCUSDT", portfolio.SideBuy, 3, 100, view)
	require.False(t, a.Allowed)
	assert.Contains(t, a.Reason, "daily loss")
	assert.Zero(t, a.RecommendedSize)
}

func TestCheckStopLoss_Long(t *testing.T) {
	m := NewManager(defaultLimits()) // stop at 3%
	pos := portfolio.Position{Symbol: "BTCUSDT", Quantity: 1, AvgPrice: 100, Side: portfolio.PositionLong}

	pos.CurrentPrice = 96.9 // 3.1% adverse
	assert.True(t, m.CheckStopLoss(pos))

	pos.CurrentPrice = 97.5 // 2.5% adverse
	assert.False(t, m.CheckStopLoss(pos))

	pos.CurrentPrice = 97.0 // exactly 3%
	assert.True(t, m.CheckStopLoss(pos))
}

func TestCheckStopLoss_Short(t *testing.T) {
	m := NewManager(defaultLimits())
	pos := portfolio.Position{Symbol: "BTCUSDT", Quantity: -1, AvgPrice: 100, Side: portfolio.PositionShort}

	pos.CurrentPrice = 103.5
	assert.True(t, m.CheckStopLoss(pos))

	pos.CurrentPrice = 102.0
	assert.False(t, m.CheckStopLoss(pos))
}

func TestCheckTakeProfit(t *testing.T) {
	m := NewManager(defaultLimits()) // target at 6%
	long := portfolio.Position{Quantity: 1, AvgPrice: 100, Side: portfolio.PositionLong}

	long.CurrentPrice = 106.5
	assert.True(t, m.CheckTakeProfit(long))

	long.CurrentPrice = 104.0
	assert.False(t, m.CheckTakeProfit(long))

	short := portfolio.Position{Quantity: -1, AvgPrice: 100, Side: portfolio.PositionShort}
	short.CurrentPrice = 93.0
	assert.True(t, m.CheckTakeProfit(short))
}

func TestCheckPredicates_ZeroEntryPrice(t *testing.T) {
	m := NewManager(defaultLimits())
	pos := portfolio.Position{Quantity: 1, Side: portfolio.PositionLong}

	assert.False(t, m.CheckStopLoss(pos))
	assert.False(t, m.CheckTakeProfit(pos))
}

func TestAssessTrade_RejectionsCarryGateIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Manager)
		view     stubView
		quantity float64
		gate     string
	}{
		{
			name:     "daily loss",
			setup:    func(m *Manager) { m.RecordRealizedPnL(-100) },
			view:     stubView{totalValue: 1000, balance: 1000},
			quantity: 1,
			gate:     GateDailyLoss,
		},
		{
			name:     "position size",
			setup:    func(m *Manager) {},
			view:     stubView{totalValue: 1000, balance: 1000},
			quantity: 3,
			gate:     GatePositionSize,
		},
		{
			name:     "position count",
			setup:    func(m *Manager) {},
			view:     stubView{totalValue: 1000, balance: 1000, openCount: 3},
			quantity: 1,
			gate:     GatePositionCount,
		},
		{
			name:     "affordability",
			setup:    func(m *Manager) {},
			view:     stubView{totalValue: 1000, balance: 100},
			quantity: 1.5,
			gate:     GateAffordability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(defaultLimits())
			tt.setup(m)

			a := m.AssessTrade("BTCUSDT", portfolio.SideBuy, tt.quantity, 100, tt.view)
			require.False(t, a.Allowed)
			assert.Equal(t, tt.gate, a.Gate)
		})
	}

	allowed := NewManager(defaultLimits()).AssessTrade("BTCUSDT", portfolio.SideBuy, 1, 100,
		stubView{totalValue: 1000, balance: 1000})
	assert.True(t, allowed.Allowed)
	assert.Empty(t, allowed.Gate)
}
