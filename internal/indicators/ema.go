package indicators

// EMA computes the Exponential Moving Average series over prices.
// The series is seeded with prices[0] and smoothed with
// k = 2/(period+1). Unlike SMA there is no warm-up truncation: the
// output length equals the input length. MACD alignment relies on this.
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return nil
	}

	k := 2.0 / float64(period+1)

	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*k + out[i-1]
	}

	return out
}
