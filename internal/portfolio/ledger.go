package portfolio

import "fmt"

// Side represents the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// PositionSide represents the direction of an open position.
// A position is long iff its quantity is positive.
type PositionSide string

const (
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
)

// affordabilityBuffer is the 1% fee/slippage margin applied to buys.
const affordabilityBuffer = 1.01

// Trade is one fill recorded in the ledger. Trades are immutable once
// recorded and accumulate without bound.
type Trade struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Side      Side    `json:"side"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
	Fee       float64 `json:"fee"`
}

// Position is the net open exposure in one symbol. The ledger owns
// positions exclusively; a position whose quantity returns to exactly
// zero is removed.
type Position struct {
	Symbol        string       `json:"symbol"`
	Quantity      float64      `json:"quantity"`
	AvgPrice      float64      `json:"avg_price"`
	CurrentPrice  float64      `json:"current_price"`
	UnrealizedPnL float64      `json:"unrealized_pnl"`
	Side          PositionSide `json:"side"`
}

// Summary is a derived snapshot of the ledger, recomputed on demand.
type Summary struct {
	AvailableBalance float64 `json:"available_balance"`
	PositionsValue   float64 `json:"positions_value"`
	TotalValue       float64 `json:"total_value"`
	TotalPnL         float64 `json:"total_pnl"`
	OpenPositions    int     `json:"open_positions"`
	TotalTrades      int     `json:"total_trades"`
}

// Ledger is the authoritative accounting state: running balance, open
// positions and the append-only trade history. All derived reads are
// recomputed from this state, so they cannot drift from the history.
type Ledger struct {
	initialBalance   float64
	availableBalance float64
	positions        map[string]*Position
	trades           []Trade
}

// NewLedger creates a ledger with the given starting balance.
func NewLedger(initialBalance float64) *Ledger {
	return &Ledger{
		initialBalance:   initialBalance,
		availableBalance: initialBalance,
		positions:        make(map[string]*Position),
	}
}

// AddTrade appends the trade to the history, updates the position for
// its symbol and adjusts the available balance. Same-direction adds
// use a weighted-average entry price; opposite-direction trades reduce
// the quantity. The realized P&L of any reduced portion is returned.
func (l *Ledger) AddTrade(trade Trade) float64 {
	l.trades = append(l.trades, trade)

	delta := trade.Quantity
	if trade.Side == SideSell {
		delta = -trade.Quantity
	}

	realized := 0.0
	pos, ok := l.positions[trade.Symbol]
	if !ok {
		pos = &Position{Symbol: trade.Symbol, AvgPrice: trade.Price, CurrentPrice: trade.Price}
		l.positions[trade.Symbol] = pos
	}

	sameDirection := pos.Quantity == 0 || (pos.Quantity > 0) == (delta > 0)
	if sameDirection {
		newQty := pos.Quantity + delta
		pos.AvgPrice = (pos.AvgPrice*abs(pos.Quantity) + trade.Price*abs(delta)) / abs(newQty)
		pos.Quantity = newQty
	} else {
		closed := abs(delta)
		if closed > abs(pos.Quantity) {
			closed = abs(pos.Quantity)
		}
		if pos.Quantity > 0 {
			realized = (trade.Price - pos.AvgPrice) * closed
		} else {
			realized = (pos.AvgPrice - trade.Price) * closed
		}
		pos.Quantity += delta
		if pos.Quantity != 0 && (pos.Quantity > 0) != (pos.Quantity-delta > 0) {
			// The trade flipped the position: the excess opens at trade price.
			pos.AvgPrice = trade.Price
		}
	}

	pos.CurrentPrice = trade.Price
	if pos.Quantity == 0 {
		delete(l.positions, trade.Symbol)
	} else {
		pos.Side = sideFor(pos.Quantity)
		pos.UnrealizedPnL = (pos.CurrentPrice - pos.AvgPrice) * pos.Quantity
	}

	if trade.Side == SideBuy {
		l.availableBalance -= trade.Quantity*trade.Price + trade.Fee
	} else {
		l.availableBalance += trade.Quantity*trade.Price - trade.Fee
	}

	return realized
}

// UpdatePrice refreshes the current price and unrealized P&L of the
// position for symbol. No-op when no position is open.
func (l *Ledger) UpdatePrice(symbol string, price float64) {
	pos, ok := l.positions[symbol]
	if !ok {
		return
	}
	pos.CurrentPrice = price
	pos.UnrealizedPnL = (price - pos.AvgPrice) * pos.Quantity
}

// CanAfford reports whether a buy of quantity at price fits within the
// available balance including the 1% fee/slippage buffer.
func (l *Ledger) CanAfford(quantity, price float64) bool {
	return l.availableBalance >= quantity*price*affordabilityBuffer
}

// AvailableBalance returns the free balance.
func (l *Ledger) AvailableBalance() float64 {
	return l.availableBalance
}

// InitialBalance returns the starting balance.
func (l *Ledger) InitialBalance() float64 {
	return l.initialBalance
}

// TotalValue is the free balance plus the marked value of all
// open positions.
func (l *Ledger) TotalValue() float64 {
	total := l.availableBalance
	for _, pos := range l.positions {
		total += pos.CurrentPrice * pos.Quantity
	}
	return total
}

// TotalPnL is the total value minus the initial balance.
func (l *Ledger) TotalPnL() float64 {
	return l.TotalValue() - l.initialBalance
}

// OpenPositionCount returns the number of open positions.
func (l *Ledger) OpenPositionCount() int {
	return len(l.positions)
}

// Position returns a copy of the open position for symbol, if any.
func (l *Ledger) Position(symbol string) (Position, bool) {
	pos, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Positions returns copies of all open positions.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.positions))
	for _, pos := range l.positions {
		out = append(out, *pos)
	}
	return out
}

// Trades returns the full trade history, oldest first.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// GetSummary recomputes the derived portfolio snapshot.
func (l *Ledger) GetSummary() Summary {
	positionsValue := 0.0
	for _, pos := range l.positions {
		positionsValue += pos.CurrentPrice * pos.Quantity
	}
	totalValue := l.availableBalance + positionsValue
	return Summary{
		AvailableBalance: l.availableBalance,
		PositionsValue:   positionsValue,
		TotalValue:       totalValue,
		TotalPnL:         totalValue - l.initialBalance,
		OpenPositions:    len(l.positions),
		TotalTrades:      len(l.trades),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("balance=%.2f positions=%.2f total=%.2f pnl=%.2f open=%d trades=%d",
		s.AvailableBalance, s.PositionsValue, s.TotalValue, s.TotalPnL, s.OpenPositions, s.TotalTrades)
}

func sideFor(quantity float64) PositionSide {
	if quantity > 0 {
		return PositionLong
	}
	return PositionShort
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
