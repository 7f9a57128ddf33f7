package types

// PriceSample is a single observed price for the trading symbol.
// Timestamp is epoch milliseconds. Samples are immutable once created.
type PriceSample struct {
	Price     float64
	Timestamp int64
}

// Ticker carries the latest quote returned by a market data source.
type Ticker struct {
	Symbol    string
	Price     float64
	Timestamp int64
}

// Balance represents a single asset balance on an exchange account.
type Balance struct {
	Asset  string
	Free   float64
	Locked float64
}
