package indicators

// SMA computes the Simple Moving Average series over prices.
// For each index i >= period-1 the value is the arithmetic mean of the
// trailing period prices, so the output length is len(prices)-period+1.
// Returns nil when period is not positive or exceeds the input length.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || period > len(prices) {
		return nil
	}

	out := make([]float64, 0, len(prices)-period+1)

	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}

	return out
}
