package strategy

import (
	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// Strategy defines the contract for signal generators. Exactly one
// TradingSignal is produced per price sample.
type Strategy interface {
	// AddPriceData ingests one sample and returns the resulting signal.
	AddPriceData(sample types.PriceSample) TradingSignal

	// GetName returns the name of the strategy
	GetName() string

	// MinimumSamples returns how many samples the strategy needs
	// before it can emit anything other than HOLD.
	MinimumSamples() int

	// Reset clears all buffered price history and latch state.
	Reset()
}

// TradingSignal is a directional decision with a confidence score.
// Confidence is always in [0,1] and is 0 for HOLD.
type TradingSignal struct {
	Action     SignalAction
	Confidence float64
	Timestamp  int64
}

// SignalAction represents the direction of a trading signal
type SignalAction int

const (
	ActionHold SignalAction = iota
	ActionBuy
	ActionSell
)

func (a SignalAction) String() string {
	switch a {
	case ActionHold:
		return "HOLD"
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the closing action for a directional signal.
func (a SignalAction) Opposite() SignalAction {
	switch a {
	case ActionBuy:
		return ActionSell
	case ActionSell:
		return ActionBuy
	default:
		return ActionHold
	}
}

func hold(timestamp int64) TradingSignal {
	return TradingSignal{Action: ActionHold, Confidence: 0, Timestamp: timestamp}
}
