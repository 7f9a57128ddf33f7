package bybit

import (
	"context"
	"encoding/json"
	"fmt"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Balance represents a coin balance in the unified account.
type Balance struct {
	Coin          string
	WalletBalance float64
	Locked        float64
}

// GetCoinBalance retrieves the unified-account balance for one coin.
func (c *Client) GetCoinBalance(ctx context.Context, coin string) (*Balance, error) {
	params := map[string]interface{}{
		"accountType": "UNIFIED",
		"coin":        coin,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(params).GetAccountWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get account balance: %w", err)
	}

	serverResp, ok := interface{}(result).(*bybit_api.ServerResponse)
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

	var walletResult struct {
		List []struct {
			Coin []struct {
				Coin          string `json:"coin"`
				WalletBalance string `json:"walletBalance"`
				Locked        string `json:"locked"`
			} `json:"coin"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &walletResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet result: %w", err)
	}

	for _, account := range walletResult.List {
		for _, balance := range account.Coin {
			if balance.Coin == coin {
				return &Balance{
					Coin:          balance.Coin,
					WalletBalance: parseFloat64(balance.WalletBalance),
					Locked:        parseFloat64(balance.Locked),
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("no balance found for %s", coin)
}
