package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

func TestRSIThreshold_HoldsBelowMinimumWindow(t *testing.T) {
	s := NewRSIThreshold(14, 30, 70)
	assert.Equal(t, 15, s.MinimumSamples())

	for i := 0; i < s.MinimumSamples()-1; i++ {
		sig := s.AddPriceData(types.PriceSample{Price: 100, Timestamp: int64(i)})
		assert.Equal(t, ActionHold, sig.Action)
		assert.Equal(t, 0.0, sig.Confidence)
	}
}

func TestRSIThreshold_BuyOnOversoldCross(t *testing.T) {
	s := NewRSIThreshold(2, 30, 70)

	// Mixed moves keep the RSI neutral, then two losses drive it to 0.
	signals := feed(s, []float64{100, 101, 100.5, 99})

	require.Len(t, signals, 4)
	assert.Equal(t, ActionBuy, signals[3].Action)
	assert.Equal(t, 1.0, signals[3].Confidence) // (30-0)/30
}

func TestRSIThreshold_LatchSuppressesRepeatedBuys(t *testing.T) {
	s := NewRSIThreshold(2, 30, 70)

	// Enter oversold, then keep falling: the latch must hold the second signal.
	signals := feed(s, []float64{100, 101, 100.5, 99, 98, 97})

	buys := 0
	for _, sig := range signals {
		if sig.Action == ActionBuy {
			buys++
		}
	}
	assert.Equal(t, 1, buys)
}

func TestRSIThreshold_NeutralBandRearmsLatch(t *testing.T) {
	s := NewRSIThreshold(2, 30, 70)

	prices := []float64{
		100, 101, 100.5, // neutral
		99,        // BUY: RSI 0, previous above oversold
		98,        // still oversold, latched
		99.5, 100, // recover into the neutral band, latch rearms
		99, 97, // back below oversold: second BUY allowed
	}
	signals := feed(s, prices)

	buys := 0
	for _, sig := range signals {
		if sig.Action == ActionBuy {
			buys++
		}
	}
	assert.Equal(t, 2, buys)
}

func TestRSIThreshold_SellOnOverboughtCross(t *testing.T) {
	s := NewRSIThreshold(2, 30, 70)

	// Mixed moves keep the RSI neutral, then two gains drive it to 100.
	signals := feed(s, []float64{100, 99, 99.5, 101})

	require.Len(t, signals, 4)
	assert.Equal(t, ActionSell, signals[3].Action)
	assert.Equal(t, 1.0, signals[3].Confidence) // (100-70)/(100-70)
}

func TestRSIThreshold_NeverTwoBuysWithoutNeutralReset(t *testing.T) {
	s := NewRSIThreshold(3, 30, 70)

	// Random-ish walk with long oversold stretches.
	prices := []float64{
		50, 49, 51, 48, 47, 46, 45, 44, 46, 47,
		48, 50, 49, 47, 45, 43, 42, 41, 43, 45,
	}

	lastDirectional := ActionHold
	for i, p := range prices {
		sig := s.AddPriceData(types.PriceSample{Price: p, Timestamp: int64(i)})
		if sig.Action == ActionBuy {
			assert.NotEqual(t, ActionBuy, lastDirectional, "consecutive BUY at sample %d", i)
		}
		if sig.Action != ActionHold {
			lastDirectional = sig.Action
		}
	}
}

func TestRSIThreshold_Reset(t *testing.T) {
	s := NewRSIThreshold(2, 30, 70)
	feed(s, []float64{100, 101, 100.5, 99})

	s.Reset()
	sig := s.AddPriceData(types.PriceSample{Price: 100, Timestamp: 1})
	assert.Equal(t, ActionHold, sig.Action)
}

func TestRSIThreshold_GetName(t *testing.T) {
	assert.Equal(t, "RSI_THRESHOLD", NewRSIThreshold(14, 30, 70).GetName())
}
