package exchange

import (
	"context"
	"time"

	boterrors "github.com/tradeforge/crypto-signal-bot/internal/errors"
	"github.com/tradeforge/crypto-signal-bot/internal/exchange/bybit"
	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// LiveExchange routes orders to Bybit through the wrapped API client.
type LiveExchange struct {
	client    *bybit.Client
	connected bool
}

// NewLiveExchange creates a Bybit-backed live exchange.
func NewLiveExchange(config bybit.Config) *LiveExchange {
	return &LiveExchange{client: bybit.NewClient(config)}
}

// GetName returns the exchange name
func (e *LiveExchange) GetName() string {
	return "bybit-" + e.client.GetEnvironment()
}

// Connect verifies connectivity by fetching a well-known ticker.
func (e *LiveExchange) Connect(ctx context.Context) error {
	if _, err := e.client.GetTicker(ctx, "BTCUSDT"); err != nil {
		if bybit.IsAuthenticationError(err) {
			return boterrors.Wrap(err, boterrors.ErrorCategoryCredentials, "bybit", "Connect")
		}
		return boterrors.Wrap(err, boterrors.ErrorCategoryNetwork, "bybit", "Connect")
	}
	e.connected = true
	return nil
}

// Disconnect marks the venue disconnected. The HTTP client is stateless.
func (e *LiveExchange) Disconnect() error {
	e.connected = false
	return nil
}

// GetMarketData fetches the latest quote for symbol.
func (e *LiveExchange) GetMarketData(ctx context.Context, symbol string) (*types.Ticker, error) {
	ticker, err := e.client.GetTicker(ctx, symbol)
	if err != nil {
		return nil, boterrors.Wrap(err, boterrors.ErrorCategoryMarketData, "bybit", "GetMarketData")
	}

	ts := ticker.Timestamp
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}
	return &types.Ticker{Symbol: symbol, Price: ticker.LastPrice, Timestamp: ts}, nil
}

// PlaceOrder submits a market order. Limit orders are not part of the
// live flow.
func (e *LiveExchange) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.Type != OrderTypeMarket {
		return nil, boterrors.NewNotSupported("bybit", "PlaceOrder:limit")
	}

	side := bybit.OrderSideBuy
	if req.Side == OrderSideSell {
		side = bybit.OrderSideSell
	}

	order, err := e.client.PlaceMarketOrder(ctx, req.Symbol, side, req.Quantity)
	if err != nil {
		if bybit.IsAuthenticationError(err) {
			return nil, boterrors.Wrap(err, boterrors.ErrorCategoryCredentials, "bybit", "PlaceOrder")
		}
		return nil, boterrors.Wrap(err, boterrors.ErrorCategoryOrder, "bybit", "PlaceOrder")
	}

	return &Order{
		ID:          order.OrderID,
		Symbol:      req.Symbol,
		Side:        req.Side,
		Status:      mapOrderStatus(order.Status),
		Quantity:    req.Quantity,
		Price:       order.AvgPrice,
		CreatedTime: time.Now(),
	}, nil
}

// CancelOrder is not implemented for the live backend.
func (e *LiveExchange) CancelOrder(ctx context.Context, symbol, orderID string) error {
	return boterrors.NewNotSupported("bybit", "CancelOrder")
}

// GetBalance retrieves the unified-account balance for asset.
func (e *LiveExchange) GetBalance(ctx context.Context, asset string) (*types.Balance, error) {
	balance, err := e.client.GetCoinBalance(ctx, asset)
	if err != nil {
		if bybit.IsAuthenticationError(err) {
			return nil, boterrors.Wrap(err, boterrors.ErrorCategoryCredentials, "bybit", "GetBalance")
		}
		return nil, boterrors.Wrap(err, boterrors.ErrorCategoryNetwork, "bybit", "GetBalance")
	}
	return &types.Balance{
		Asset:  balance.Coin,
		Free:   balance.WalletBalance - balance.Locked,
		Locked: balance.Locked,
	}, nil
}

// mapOrderStatus folds the venue's order states onto the core's three.
// Partial fills collapse to NEW: only a full fill applies to the ledger.
func mapOrderStatus(status bybit.OrderStatus) OrderStatus {
	switch status {
	case bybit.OrderStatusFilled:
		return OrderStatusFilled
	case bybit.OrderStatusCancelled, bybit.OrderStatusRejected:
		return OrderStatusCancelled
	default:
		return OrderStatusNew
	}
}
