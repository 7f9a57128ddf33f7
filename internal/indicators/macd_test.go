package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACD_EmptyInput(t *testing.T) {
	res := MACD(nil, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	assert.Empty(t, res.Line)
	assert.Empty(t, res.Signal)
	assert.Empty(t, res.Histogram)
}

func TestMACD_SeriesLengths(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i%9)
	}

	res := MACD(prices, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)

	// EMA preserves length, so line, signal and histogram all span the input.
	assert.Len(t, res.Line, len(prices))
	assert.Len(t, res.Signal, len(prices))
	assert.Len(t, res.Histogram, len(prices))
}

func TestMACD_LineIsFastMinusSlow(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	fast, slow := EMA(prices, 3), EMA(prices, 6)

	res := MACD(prices, 3, 6, 4)
	require.Len(t, res.Line, len(prices))
	for i := range res.Line {
		assert.InDelta(t, fast[i]-slow[i], res.Line[i], 1e-9)
	}
}

func TestMACD_HistogramIsLineMinusSignal(t *testing.T) {
	prices := []float64{10, 12, 9, 14, 11, 16, 13, 18, 15, 20}

	res := MACD(prices, 3, 6, 4)
	require.Equal(t, len(res.Line), len(res.Histogram))
	for i := range res.Histogram {
		assert.InDelta(t, res.Line[i]-res.Signal[i], res.Histogram[i], 1e-9)
	}
}

func TestMACD_FlatSeriesIsZero(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 250
	}

	res := MACD(prices, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	for i := range res.Line {
		assert.InDelta(t, 0.0, res.Line[i], 1e-9)
		assert.InDelta(t, 0.0, res.Histogram[i], 1e-9)
	}
}

func BenchmarkMACD(b *testing.B) {
	prices := make([]float64, 200)
	for i := range prices {
		prices[i] = 100 + float64(i%17)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MACD(prices, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	}
}
