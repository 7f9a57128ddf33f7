package strategy

import (
	"math"

	"github.com/tradeforge/crypto-signal-bot/internal/indicators"
	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// smaCrossoverWindow caps the price history kept by the SMA strategy.
const smaCrossoverWindow = 200

// SMACrossover emits BUY when the fast SMA crosses above the slow SMA
// and SELL on the mirrored crossing down. The crossing check compares
// the last two fast/slow pairs, so there is no latch state: between
// true crosses the SMA values move monotonically and the condition
// fires once.
type SMACrossover struct {
	fastPeriod int
	slowPeriod int
	window     *priceWindow
}

// NewSMACrossover creates a new SMA crossover strategy
func NewSMACrossover(fastPeriod, slowPeriod int) *SMACrossover {
	return &SMACrossover{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
		window:     newPriceWindow(smaCrossoverWindow),
	}
}

// AddPriceData ingests one sample and checks for a fast/slow crossing.
func (s *SMACrossover) AddPriceData(sample types.PriceSample) TradingSignal {
	s.window.Push(sample.Price)

	if s.window.Len() < s.slowPeriod {
		return hold(sample.Timestamp)
	}

	prices := s.window.Values()
	fast := indicators.SMA(prices, s.fastPeriod)
	slow := indicators.SMA(prices, s.slowPeriod)

	// A crossing needs the current and the previous pair.
	if len(fast) < 2 || len(slow) < 2 {
		return hold(sample.Timestamp)
	}

	curFast, prevFast := fast[len(fast)-1], fast[len(fast)-2]
	curSlow, prevSlow := slow[len(slow)-1], slow[len(slow)-2]

	if prevFast <= prevSlow && curFast > curSlow {
		confidence := math.Min(((curFast-curSlow)/curSlow)*100, 1.0)
		return TradingSignal{Action: ActionBuy, Confidence: confidence, Timestamp: sample.Timestamp}
	}

	if prevFast >= prevSlow && curFast < curSlow {
		confidence := math.Min(((curSlow-curFast)/curFast)*100, 1.0)
		return TradingSignal{Action: ActionSell, Confidence: confidence, Timestamp: sample.Timestamp}
	}

	return hold(sample.Timestamp)
}

// GetName returns the strategy name
func (s *SMACrossover) GetName() string {
	return "SMA_CROSSOVER"
}

// MinimumSamples returns the slow period, below which every call holds.
func (s *SMACrossover) MinimumSamples() int {
	return s.slowPeriod
}

// Reset clears the buffered price history.
func (s *SMACrossover) Reset() {
	s.window.Reset()
}
