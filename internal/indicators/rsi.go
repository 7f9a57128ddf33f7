package indicators

import "math"

// RSI computes the Relative Strength Index series over prices.
// Gains and losses come from consecutive price differences and are
// averaged over a trailing window of length period. The first output
// value corresponds to prices[period], so the output length is
// len(prices)-period. When the average loss over the window is exactly
// zero (including the all-gains case) the RSI is 100.
func RSI(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return nil
	}

	changes := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		changes[i-1] = prices[i] - prices[i-1]
	}

	out := make([]float64, 0, len(changes)-period+1)
	for end := period; end <= len(changes); end++ {
		avgGain, avgLoss := 0.0, 0.0
		for _, change := range changes[end-period : end] {
			if change > 0 {
				avgGain += change
			} else {
				avgLoss += math.Abs(change)
			}
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		if avgLoss == 0 {
			out = append(out, 100)
			continue
		}

		rs := avgGain / avgLoss
		out = append(out, 100-100/(1+rs))
	}

	return out
}
