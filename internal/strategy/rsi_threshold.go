package strategy

import (
	"math"

	"github.com/tradeforge/crypto-signal-bot/internal/indicators"
	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// rsiThresholdWindow caps the price history kept by the RSI strategy.
const rsiThresholdWindow = 100

// RSIThreshold emits BUY when the RSI drops through the oversold level
// and SELL when it rises through the overbought level. A lastSignal
// latch suppresses repeated signals while the RSI lingers past a
// threshold; re-entering the neutral band rearms the latch.
type RSIThreshold struct {
	period     int
	oversold   float64
	overbought float64
	window     *priceWindow
	lastSignal SignalAction
}

// NewRSIThreshold creates a new RSI threshold strategy
func NewRSIThreshold(period int, oversold, overbought float64) *RSIThreshold {
	return &RSIThreshold{
		period:     period,
		oversold:   oversold,
		overbought: overbought,
		window:     newPriceWindow(rsiThresholdWindow),
		lastSignal: ActionHold,
	}
}

// AddPriceData ingests one sample and checks the RSI thresholds.
func (s *RSIThreshold) AddPriceData(sample types.PriceSample) TradingSignal {
	s.window.Push(sample.Price)

	if s.window.Len() < s.period+1 {
		return hold(sample.Timestamp)
	}

	series := indicators.RSI(s.window.Values(), s.period)
	if len(series) == 0 {
		return hold(sample.Timestamp)
	}

	current := series[len(series)-1]

	// The neutral band rearms future triggers.
	if current > s.oversold && current < s.overbought {
		s.lastSignal = ActionHold
		return hold(sample.Timestamp)
	}

	if len(series) < 2 {
		return hold(sample.Timestamp)
	}
	previous := series[len(series)-2]

	if current <= s.oversold && previous > s.oversold && s.lastSignal != ActionBuy {
		s.lastSignal = ActionBuy
		confidence := math.Min((s.oversold-current)/s.oversold, 1.0)
		return TradingSignal{Action: ActionBuy, Confidence: confidence, Timestamp: sample.Timestamp}
	}

	if current >= s.overbought && previous < s.overbought && s.lastSignal != ActionSell {
		s.lastSignal = ActionSell
		confidence := math.Min((current-s.overbought)/(100-s.overbought), 1.0)
		return TradingSignal{Action: ActionSell, Confidence: confidence, Timestamp: sample.Timestamp}
	}

	return hold(sample.Timestamp)
}

// GetName returns the strategy name
func (s *RSIThreshold) GetName() string {
	return "RSI_THRESHOLD"
}

// MinimumSamples returns period+1, below which every call holds.
func (s *RSIThreshold) MinimumSamples() int {
	return s.period + 1
}

// Reset clears the buffered price history and the signal latch.
func (s *RSIThreshold) Reset() {
	s.window.Reset()
	s.lastSignal = ActionHold
}
