package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
)

func tradeAt(t time.Time, qty, price, pnl float64) (portfolio.Trade, float64) {
	return portfolio.Trade{
		ID:        "t1",
		Symbol:    "BTCUSDT",
		Side:      portfolio.SideBuy,
		Quantity:  qty,
		Price:     price,
		Fee:       qty * price * 0.001,
		Timestamp: t.UnixMilli(),
	}, pnl
}

func TestTradeJournal_LogAndAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.jsonl")

	journal, err := NewTradeJournal(path)
	require.NoError(t, err)
	defer journal.Close()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	trade, pnl := tradeAt(now, 2.0, 100.0, 0)
	require.NoError(t, journal.LogTrade(trade, pnl, "SIGNAL"))

	trade2, pnl2 := tradeAt(now.Add(time.Hour), 1.0, 110.0, 10.0)
	require.NoError(t, journal.LogTrade(trade2, pnl2, "TAKE_PROFIT"))

	stats := journal.GetDailyStats("2025-06-15")
	assert.Equal(t, 2, stats.Trades)
	assert.InDelta(t, 2*100.0+1*110.0, stats.Volume, 1e-9)
	assert.InDelta(t, 10.0, stats.PnL, 1e-9)
}

func TestTradeJournal_RebuildIndexOnReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.jsonl")
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	journal, err := NewTradeJournal(path)
	require.NoError(t, err)

	trade, pnl := tradeAt(now, 2.0, 100.0, 5.0)
	require.NoError(t, journal.LogTrade(trade, pnl, "SIGNAL"))
	require.NoError(t, journal.Close())

	reopened, err := NewTradeJournal(path)
	require.NoError(t, err)
	defer reopened.Close()

	stats := reopened.GetDailyStats("2025-06-15")
	assert.Equal(t, 1, stats.Trades)
	assert.InDelta(t, 200.0, stats.Volume, 1e-9)
	assert.InDelta(t, 5.0, stats.PnL, 1e-9)
}

func TestTradeJournal_SignalsDoNotAffectStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.jsonl")

	journal, err := NewTradeJournal(path)
	require.NoError(t, err)
	defer journal.Close()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, journal.LogSignal("BTCUSDT", "SMA_CROSSOVER", "BUY", 0.8, 100.0, now.UnixMilli()))

	stats := journal.GetDailyStats("2025-06-15")
	assert.Equal(t, 0, stats.Trades)
	assert.Zero(t, stats.Volume)
}

func TestTradeJournal_UnknownDayIsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.jsonl")

	journal, err := NewTradeJournal(path)
	require.NoError(t, err)
	defer journal.Close()

	stats := journal.GetDailyStats("1999-01-01")
	assert.Equal(t, "1999-01-01", stats.Date)
	assert.Zero(t, stats.Trades)
}
