package strategy

// priceWindow is a fixed-capacity ring buffer over recent prices.
// Push evicts the oldest entry in O(1) once the window is full.
type priceWindow struct {
	buf   []float64
	head  int
	count int
}

func newPriceWindow(capacity int) *priceWindow {
	return &priceWindow{buf: make([]float64, capacity)}
}

// Push appends a price, discarding the oldest one on overflow.
func (w *priceWindow) Push(price float64) {
	w.buf[(w.head+w.count)%len(w.buf)] = price
	if w.count < len(w.buf) {
		w.count++
	} else {
		w.head = (w.head + 1) % len(w.buf)
	}
}

// Len returns the number of buffered prices.
func (w *priceWindow) Len() int {
	return w.count
}

// Values returns the buffered prices oldest-first.
func (w *priceWindow) Values() []float64 {
	out := make([]float64, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

// Reset empties the window without reallocating.
func (w *priceWindow) Reset() {
	w.head = 0
	w.count = 0
}
