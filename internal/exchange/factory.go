package exchange

import (
	"fmt"
	"strings"

	boterrors "github.com/tradeforge/crypto-signal-bot/internal/errors"
	"github.com/tradeforge/crypto-signal-bot/internal/exchange/bybit"
)

// FactoryConfig holds the settings needed to construct an exchange.
type FactoryConfig struct {
	Name      string // simulated, bybit
	APIKey    string
	APISecret string
	Category  string
	Testnet   bool
	Demo      bool
}

// NewExchange creates an exchange instance from configuration.
func NewExchange(config FactoryConfig) (Exchange, error) {
	switch strings.ToLower(strings.TrimSpace(config.Name)) {
	case "", "simulated":
		return NewSimulatedExchange(), nil
	case "bybit":
		if config.APIKey == "" || config.APISecret == "" {
			return nil, boterrors.New(boterrors.ErrorCategoryCredentials, "exchange", "NewExchange",
				"bybit requires an API key and secret")
		}
		return NewLiveExchange(bybit.Config{
			APIKey:    config.APIKey,
			APISecret: config.APISecret,
			Category:  config.Category,
			Testnet:   config.Testnet,
			Demo:      config.Demo,
		}), nil
	default:
		return nil, boterrors.New(boterrors.ErrorCategoryConfiguration, "exchange", "NewExchange",
			fmt.Sprintf("unsupported exchange %q (supported: simulated, bybit)", config.Name))
	}
}
