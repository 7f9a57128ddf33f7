package indicators

// MACDResult holds the three aligned MACD output series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// Default MACD parameters.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD computes the MACD line, signal line and histogram over prices.
// The MACD line is fastEMA-slowEMA aligned on the common trailing
// suffix. Because EMA preserves input length both series are equal
// length in practice, but unequal inputs are aligned defensively.
// The signal line is the EMA of the MACD line, and the histogram is
// line-signal over the overlapping suffix.
func MACD(prices []float64, fast, slow, signal int) MACDResult {
	fastEMA := EMA(prices, fast)
	slowEMA := EMA(prices, slow)

	n := len(fastEMA)
	if len(slowEMA) < n {
		n = len(slowEMA)
	}
	if n == 0 {
		return MACDResult{}
	}

	fastEMA = fastEMA[len(fastEMA)-n:]
	slowEMA = slowEMA[len(slowEMA)-n:]

	line := make([]float64, n)
	for i := 0; i < n; i++ {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := EMA(line, signal)

	m := len(signalLine)
	if len(line) < m {
		m = len(line)
	}
	hist := make([]float64, m)
	lineTail := line[len(line)-m:]
	signalTail := signalLine[len(signalLine)-m:]
	for i := 0; i < m; i++ {
		hist[i] = lineTail[i] - signalTail[i]
	}

	return MACDResult{Line: line, Signal: signalLine, Histogram: hist}
}
