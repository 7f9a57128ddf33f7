package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Ticker is the latest quote for a symbol.
type Ticker struct {
	Symbol    string
	LastPrice float64
	Timestamp int64
}

// GetTicker fetches the latest quote for a symbol.
func (c *Client) GetTicker(ctx context.Context, symbol string) (*Ticker, error) {
	params := map[string]interface{}{
		"category": c.category,
		"symbol":   symbol,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker: %w", err)
	}

	return c.parseTickerResponse(result, symbol)
}

// parseTickerResponse extracts the last price from the tickers response.
func (c *Client) parseTickerResponse(response interface{}, symbol string) (*Ticker, error) {
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

	var tickerResult struct {
		Category string `json:"category"`
		List     []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &tickerResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticker result: %w", err)
	}

	if len(tickerResult.List) == 0 {
		return nil, fmt.Errorf("no ticker data for %s", symbol)
	}

	return &Ticker{
		Symbol:    symbol,
		LastPrice: parseFloat64(tickerResult.List[0].LastPrice),
		Timestamp: serverResp.Time,
	}, nil
}

func parseFloat64(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
