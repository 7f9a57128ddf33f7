package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// OrderSide represents the side of an order
type OrderSide string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "New"
	OrderStatusPartiallyFilled OrderStatus = "PartiallyFilled"
	OrderStatusFilled          OrderStatus = "Filled"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusRejected        OrderStatus = "Rejected"
)

// Order represents an order accepted by the venue.
type Order struct {
	OrderID     string
	OrderLinkID string
	Symbol      string
	Side        OrderSide
	Status      OrderStatus
	Qty         float64
	AvgPrice    float64
}

// PlaceMarketOrder submits a market order and returns the venue's
// view of it, including the resolved status.
func (c *Client) PlaceMarketOrder(ctx context.Context, symbol string, side OrderSide, qty float64) (*Order, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	params := map[string]interface{}{
		"category":  c.category,
		"symbol":    symbol,
		"side":      string(side),
		"orderType": "Market",
		"qty":       strconv.FormatFloat(qty, 'f', -1, 64),
	}

	// Parse inside the retried closure: venue errors arrive as RetCode
	// on a transport-level success, and rate limits must back off too.
	var order *Order
	err := c.Retry(ctx, func() error {
		result, callErr := c.httpClient.NewUtaBybitServiceWithParams(params).PlaceOrder(ctx)
		if callErr != nil {
			return callErr
		}
		order, callErr = c.parseOrderResponse(result)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	order.Symbol = symbol
	order.Side = side
	order.Qty = qty

	return c.resolveOrderStatus(ctx, order)
}

// resolveOrderStatus queries the final state of a freshly placed
// order. Market orders usually report Filled on the first poll.
func (c *Client) resolveOrderStatus(ctx context.Context, order *Order) (*Order, error) {
	params := map[string]interface{}{
		"category": c.category,
		"symbol":   order.Symbol,
		"orderId":  order.OrderID,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(params).GetOrderHistory(ctx)
	if err != nil {
		// The placement succeeded; report it as accepted but unresolved.
		order.Status = OrderStatusNew
		return order, nil
	}

	serverResp, ok := interface{}(result).(*bybit_api.ServerResponse)
	if !ok || serverResp.RetCode != 0 {
		order.Status = OrderStatusNew
		return order, nil
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		order.Status = OrderStatusNew
		return order, nil
	}

	var historyResult struct {
		List []struct {
			OrderID     string `json:"orderId"`
			OrderStatus string `json:"orderStatus"`
			AvgPrice    string `json:"avgPrice"`
			CumExecQty  string `json:"cumExecQty"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &historyResult); err != nil {
		order.Status = OrderStatusNew
		return order, nil
	}

	for _, item := range historyResult.List {
		if item.OrderID == order.OrderID {
			order.Status = OrderStatus(item.OrderStatus)
			if price := parseFloat64(item.AvgPrice); price > 0 {
				order.AvgPrice = price
			}
			break
		}
	}

	return order, nil
}

// parseOrderResponse parses the order placement API response.
func (c *Client) parseOrderResponse(response interface{}) (*Order, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type")
	}

	if serverResp.RetCode != 0 {
		return nil, NewAPIError(serverResp.RetCode, serverResp.RetMsg)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var orderResult struct {
		OrderID     string `json:"orderId"`
		OrderLinkID string `json:"orderLinkId"`
	}
	if err := json.Unmarshal(resultBytes, &orderResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order result: %w", err)
	}

	return &Order{
		OrderID:     orderResult.OrderID,
		OrderLinkID: orderResult.OrderLinkID,
		Status:      OrderStatusNew,
	}, nil
}
