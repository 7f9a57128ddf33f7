package exchange

import (
	"context"
	"time"

	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// Exchange is the capability contract the core trades against. The
// core never needs to know which variant it holds: Simulated fills
// locally, Live routes to a venue.
type Exchange interface {
	GetName() string
	Connect(ctx context.Context) error
	Disconnect() error

	// Market data
	GetMarketData(ctx context.Context, symbol string) (*types.Ticker, error)

	// Trading
	PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error)
	CancelOrder(ctx context.Context, symbol, orderID string) error

	// Account
	GetBalance(ctx context.Context, asset string) (*types.Balance, error)
}

// OrderSide represents buy or sell side
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderType represents different order types
type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

// OrderStatus represents the lifecycle state of an order. Anything
// other than FILLED is a recoverable failure for the caller.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderRequest holds the parameters for placing an order.
type OrderRequest struct {
	Symbol   string
	Side     OrderSide
	Type     OrderType
	Quantity float64
	Price    float64 // limit orders only
}

// Order is the venue's view of a submitted order.
type Order struct {
	ID          string
	Symbol      string
	Side        OrderSide
	Status      OrderStatus
	Quantity    float64
	Price       float64
	CreatedTime time.Time
}
