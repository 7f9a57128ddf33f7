package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA_EmptyInput(t *testing.T) {
	assert.Nil(t, EMA(nil, 5))
	assert.Nil(t, EMA([]float64{1, 2}, 0))
}

func TestEMA_PreservesInputLength(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	out := EMA(prices, 3)
	assert.Len(t, out, len(prices))
}

func TestEMA_SeededWithFirstPrice(t *testing.T) {
	out := EMA([]float64{42, 50, 60}, 10)
	require.NotEmpty(t, out)
	assert.Equal(t, 42.0, out[0])
}

func TestEMA_Recurrence(t *testing.T) {
	prices := []float64{10, 20, 30}
	out := EMA(prices, 3) // k = 0.5

	require.Len(t, out, 3)
	assert.InDelta(t, 10.0, out[0], 1e-9)
	assert.InDelta(t, 15.0, out[1], 1e-9) // (20-10)*0.5 + 10
	assert.InDelta(t, 22.5, out[2], 1e-9) // (30-15)*0.5 + 15
}

func TestEMA_FlatSeries(t *testing.T) {
	out := EMA([]float64{100, 100, 100, 100}, 5)
	for _, v := range out {
		assert.Equal(t, 100.0, v)
	}
}

func BenchmarkEMA(b *testing.B) {
	prices := make([]float64, 200)
	for i := range prices {
		prices[i] = 100 + float64(i%11)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EMA(prices, 26)
	}
}
