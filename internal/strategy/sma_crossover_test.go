package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

func feed(s Strategy, prices []float64) []TradingSignal {
	out := make([]TradingSignal, 0, len(prices))
	for i, p := range prices {
		out = append(out, s.AddPriceData(types.PriceSample{Price: p, Timestamp: int64(i) * 1000}))
	}
	return out
}

func TestSMACrossover_HoldsBelowMinimumWindow(t *testing.T) {
	s := NewSMACrossover(5, 20)

	for i := 0; i < s.MinimumSamples()-1; i++ {
		sig := s.AddPriceData(types.PriceSample{Price: 100 + float64(i), Timestamp: int64(i)})
		assert.Equal(t, ActionHold, sig.Action)
		assert.Equal(t, 0.0, sig.Confidence)
	}
}

func TestSMACrossover_HandComputedScenario(t *testing.T) {
	// fast=2, slow=3 over [1,1,1,2,3,4,1]:
	// fast SMA: 1, 1, 1.5, 2.5, 3.5, 2.5
	// slow SMA: 1, 4/3, 2, 3, 8/3
	// The fast crosses up at the 4th sample and down at the last.
	s := NewSMACrossover(2, 3)
	signals := feed(s, []float64{1, 1, 1, 2, 3, 4, 1})

	require.Len(t, signals, 7)
	expected := []SignalAction{
		ActionHold, ActionHold, ActionHold,
		ActionBuy,
		ActionHold, ActionHold,
		ActionSell,
	}
	for i, want := range expected {
		assert.Equal(t, want, signals[i].Action, "sample %d", i)
	}

	// Both crossings are wide, so confidence caps at 1.0.
	assert.Equal(t, 1.0, signals[3].Confidence)
	assert.Equal(t, 1.0, signals[6].Confidence)
}

func TestSMACrossover_NoSignalWhileTrendHolds(t *testing.T) {
	s := NewSMACrossover(2, 3)

	// Steady uptrend: fast stays above slow after the initial cross.
	signals := feed(s, []float64{1, 2, 3, 4, 5, 6, 7, 8})

	buys := 0
	for _, sig := range signals {
		if sig.Action == ActionBuy {
			buys++
		}
		assert.NotEqual(t, ActionSell, sig.Action)
	}
	assert.LessOrEqual(t, buys, 1)
}

func TestSMACrossover_ConfidenceScaledByGap(t *testing.T) {
	s := NewSMACrossover(2, 3)
	signals := feed(s, []float64{100, 100, 100, 100.1})

	require.Equal(t, ActionBuy, signals[3].Action)
	assert.Greater(t, signals[3].Confidence, 0.0)
	assert.LessOrEqual(t, signals[3].Confidence, 1.0)
}

func TestSMACrossover_Reset(t *testing.T) {
	s := NewSMACrossover(2, 3)
	feed(s, []float64{1, 2, 3, 4, 5})

	s.Reset()
	sig := s.AddPriceData(types.PriceSample{Price: 10, Timestamp: 1})
	assert.Equal(t, ActionHold, sig.Action)
}

func TestSMACrossover_GetName(t *testing.T) {
	assert.Equal(t, "SMA_CROSSOVER", NewSMACrossover(10, 30).GetName())
}
