package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	boterrors "github.com/tradeforge/crypto-signal-bot/internal/errors"
	"github.com/tradeforge/crypto-signal-bot/pkg/types"
)

// SimulatedExchange fills every order immediately at the last pushed
// price. Prices are fed externally with SetPrice, which makes it
// usable both as the dry-run venue and as a test double.
type SimulatedExchange struct {
	mu        sync.Mutex
	prices    map[string]types.Ticker
	orderSeq  int
	connected bool
}

// NewSimulatedExchange creates an empty simulated venue.
func NewSimulatedExchange() *SimulatedExchange {
	return &SimulatedExchange{prices: make(map[string]types.Ticker)}
}

// SetPrice pushes the current market price for symbol.
func (s *SimulatedExchange) SetPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = types.Ticker{
		Symbol:    symbol,
		Price:     price,
		Timestamp: time.Now().UnixMilli(),
	}
}

// GetName returns the exchange name
func (s *SimulatedExchange) GetName() string {
	return "simulated"
}

// Connect marks the venue connected. Always succeeds.
func (s *SimulatedExchange) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

// Disconnect marks the venue disconnected.
func (s *SimulatedExchange) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

// GetMarketData returns the last pushed price for symbol.
func (s *SimulatedExchange) GetMarketData(ctx context.Context, symbol string) (*types.Ticker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker, ok := s.prices[symbol]
	if !ok {
		return nil, boterrors.New(boterrors.ErrorCategoryMarketData, "simulated", "GetMarketData",
			fmt.Sprintf("no price for %s", symbol))
	}
	return &ticker, nil
}

// PlaceOrder fills the order at the last pushed price.
func (s *SimulatedExchange) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker, ok := s.prices[req.Symbol]
	if !ok {
		return nil, boterrors.New(boterrors.ErrorCategoryOrder, "simulated", "PlaceOrder",
			fmt.Sprintf("no price for %s", req.Symbol))
	}

	price := ticker.Price
	if req.Type == OrderTypeLimit && req.Price > 0 {
		price = req.Price
	}

	s.orderSeq++
	return &Order{
		ID:          fmt.Sprintf("sim-%d", s.orderSeq),
		Symbol:      req.Symbol,
		Side:        req.Side,
		Status:      OrderStatusFilled,
		Quantity:    req.Quantity,
		Price:       price,
		CreatedTime: time.Now(),
	}, nil
}

// CancelOrder is a no-op: simulated orders fill instantly, so there is
// never anything to cancel.
func (s *SimulatedExchange) CancelOrder(ctx context.Context, symbol, orderID string) error {
	return nil
}

// GetBalance is not tracked by the simulated venue; the ledger owns
// the balance in dry-run mode.
func (s *SimulatedExchange) GetBalance(ctx context.Context, asset string) (*types.Balance, error) {
	return nil, boterrors.NewNotSupported("simulated", "GetBalance")
}
